package protocol

import "github.com/KirkDiggler/hideandseek/internal/models"

// Event is any frame the server sends
type Event interface {
	Name() EventName
}

type CreateEvent struct {
	Ev     EventName `msgpack:"ev"`
	RoomID string    `msgpack:"room_id"`
}

type JoinEvent struct {
	Ev     EventName `msgpack:"ev"`
	RoomID string    `msgpack:"room_id"`
}

type PlayersEvent struct {
	Ev      EventName        `msgpack:"ev"`
	Players []*models.Player `msgpack:"players"`
}

type CoinsEvent struct {
	Ev    EventName `msgpack:"ev"`
	Coins int       `msgpack:"coins"`
}

type TaskEvent struct {
	Ev      EventName    `msgpack:"ev"`
	Task    *models.Task `msgpack:"task"`
	NewTask bool         `msgpack:"new_task"`
}

type CurseEvent struct {
	Ev       EventName     `msgpack:"ev"`
	Curse    *models.Curse `msgpack:"curse"`
	NewCurse bool          `msgpack:"new_curse"`
}

// GameEvent carries the previous phase so clients can diff transitions
type GameEvent struct {
	Ev       EventName        `msgpack:"ev"`
	State    models.GamePhase `msgpack:"state"`
	Previous models.GamePhase `msgpack:"previous"`
}

type BannedEvent struct {
	Ev EventName `msgpack:"ev"`
}

type FoundEvent struct {
	Ev    EventName         `msgpack:"ev"`
	Found models.FoundState `msgpack:"found"`
}

type StartedEvent struct {
	Ev        EventName `msgpack:"ev"`
	StartedAt int64     `msgpack:"started_at"`
}

type EndedEvent struct {
	Ev      EventName `msgpack:"ev"`
	EndedAt int64     `msgpack:"ended_at"`
}

type GPSEvent struct {
	Ev         EventName      `msgpack:"ev"`
	PlayerName string         `msgpack:"name"`
	Coords     *models.Coords `msgpack:"coords"`
}

type ErrorEvent struct {
	Ev    EventName `msgpack:"ev"`
	Error string    `msgpack:"error"`
}

func (e *CreateEvent) Name() EventName  { return EvCreate }
func (e *JoinEvent) Name() EventName    { return EvJoin }
func (e *PlayersEvent) Name() EventName { return EvPlayers }
func (e *CoinsEvent) Name() EventName   { return EvCoins }
func (e *TaskEvent) Name() EventName    { return EvTask }
func (e *CurseEvent) Name() EventName   { return EvCurse }
func (e *GameEvent) Name() EventName    { return EvGame }
func (e *BannedEvent) Name() EventName  { return EvBanned }
func (e *FoundEvent) Name() EventName   { return EvFound }
func (e *StartedEvent) Name() EventName { return EvStarted }
func (e *EndedEvent) Name() EventName   { return EvEnded }
func (e *GPSEvent) Name() EventName     { return EvGPS }
func (e *ErrorEvent) Name() EventName   { return EvError }

func Create(roomID string) *CreateEvent { return &CreateEvent{Ev: EvCreate, RoomID: roomID} }
func Join(roomID string) *JoinEvent     { return &JoinEvent{Ev: EvJoin, RoomID: roomID} }
func Coins(coins int) *CoinsEvent       { return &CoinsEvent{Ev: EvCoins, Coins: coins} }
func Banned() *BannedEvent              { return &BannedEvent{Ev: EvBanned} }
func Error(message string) *ErrorEvent  { return &ErrorEvent{Ev: EvError, Error: message} }

func Players(players []*models.Player) *PlayersEvent {
	return &PlayersEvent{Ev: EvPlayers, Players: players}
}

// TaskUpdate copies the task so later mutation of room state does not leak
// into frames still waiting to be written.
func TaskUpdate(task *models.Task, isNew bool) *TaskEvent {
	return &TaskEvent{Ev: EvTask, Task: task.Clone(), NewTask: isNew}
}

func CurseUpdate(curse *models.Curse, isNew bool) *CurseEvent {
	return &CurseEvent{Ev: EvCurse, Curse: curse.Clone(), NewCurse: isNew}
}

func Game(state, previous models.GamePhase) *GameEvent {
	return &GameEvent{Ev: EvGame, State: state, Previous: previous}
}

func Found(found models.FoundState) *FoundEvent {
	return &FoundEvent{Ev: EvFound, Found: found}
}

func Started(at int64) *StartedEvent { return &StartedEvent{Ev: EvStarted, StartedAt: at} }
func Ended(at int64) *EndedEvent     { return &EndedEvent{Ev: EvEnded, EndedAt: at} }

func GPS(name string, coords *models.Coords) *GPSEvent {
	c := *coords
	return &GPSEvent{Ev: EvGPS, PlayerName: name, Coords: &c}
}
