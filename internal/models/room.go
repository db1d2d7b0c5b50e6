package models

// Room represents one game session
type Room struct {
	// ID is a numeric string between 100 and 998
	ID string

	// RoomPassword admits regular players
	RoomPassword string

	// AdminPassword admits admins
	AdminPassword string

	// Players in join order, unique by name
	Players []*Player

	// Coins is the shared seeker balance
	Coins int

	// Tasks holds settled task records
	Tasks []*Task

	// PendingTask is the in-flight task awaiting confirmation, if any
	PendingTask *Task

	// Curses holds settled curse records
	Curses []*Curse

	// PendingCurse is the in-flight curse awaiting confirmation, if any
	PendingCurse *Curse

	// Game is the current phase
	Game GamePhase

	// Found tracks which sides declared the hiders found
	Found FoundState

	// StartedAt and EndedAt are milliseconds since the epoch
	StartedAt *int64
	EndedAt   *int64

	// Connections counts the open connections joined to the room
	Connections int
}

// NewRoom creates a waiting room with its creator as admin
func NewRoom(id, adminName, roomPassword, adminPassword string) *Room {
	return &Room{
		ID:            id,
		RoomPassword:  roomPassword,
		AdminPassword: adminPassword,
		Players: []*Player{
			{Name: adminName, Role: RoleAdmin},
		},
		Tasks:  []*Task{},
		Curses: []*Curse{},
		Game:   GamePhaseWaiting,
		Found:  FoundStateNone,
	}
}

// FindPlayer looks a player up by name
func (r *Room) FindPlayer(name string) *Player {
	for _, p := range r.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// TaskHistory returns settled tasks followed by the in-flight one.
func (r *Room) TaskHistory() []*Task {
	history := make([]*Task, 0, len(r.Tasks)+1)
	history = append(history, r.Tasks...)
	if r.PendingTask != nil {
		history = append(history, r.PendingTask)
	}
	return history
}

// CurseHistory returns settled curses followed by the in-flight one.
func (r *Room) CurseHistory() []*Curse {
	history := make([]*Curse, 0, len(r.Curses)+1)
	history = append(history, r.Curses...)
	if r.PendingCurse != nil {
		history = append(history, r.PendingCurse)
	}
	return history
}

// HasTask reports whether a task of this key was ever recorded in the room
func (r *Room) HasTask(key string) bool {
	for _, t := range r.TaskHistory() {
		if t.Task == key {
			return true
		}
	}
	return false
}

// SnapshotPlayers returns deep copies of the roster for broadcasting
func (r *Room) SnapshotPlayers() []*Player {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p.Clone())
	}
	return players
}
