// Package ws serves the game over websockets. A single Hub goroutine owns the
// session service; connections only exchange frames with it over channels.
package ws

import (
	"context"
	"errors"
	"log"

	"github.com/KirkDiggler/hideandseek/internal/common/uuid"
	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/protocol"
	"github.com/KirkDiggler/hideandseek/internal/repositories/archive"
	roomRepo "github.com/KirkDiggler/hideandseek/internal/repositories/room"
	"github.com/KirkDiggler/hideandseek/internal/services/session"
)

// DefaultSendBuffer is the per-connection outbound queue used when
// Config.SendBuffer is not set
const DefaultSendBuffer = 64

var (
	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilSession       = errors.New("session service cannot be nil")
	ErrNilRoomRepo      = errors.New("room repository cannot be nil")
	ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")
)

// Reporter receives room reports; it must not block
type Reporter interface {
	Submit(report *models.RoomReport) bool
}

// Config holds the hub dependencies
type Config struct {
	Session       session.Service
	RoomRepo      roomRepo.Repository
	UUIDGenerator uuid.UUID

	// Reporter is optional
	Reporter Reporter

	// Archive serves stored reports over HTTP; optional
	Archive archive.Repository

	Logger     *log.Logger
	SendBuffer int
}

// Stats is a point-in-time view of the hub
type Stats struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
}

type inbound struct {
	client *client
	msg    *protocol.ClientMessage
}

// Hub serializes every game event. Each inbound event is handled to
// completion, including fan-out, before the next one is taken.
type Hub struct {
	session       session.Service
	roomRepo      roomRepo.Repository
	uuidGenerator uuid.UUID
	reporter      Reporter
	archive       archive.Repository
	logger        *log.Logger
	sendBuffer    int

	register   chan *client
	unregister chan *client
	inbound    chan inbound
	stats      chan chan Stats
	done       chan struct{}

	// owned by Run
	clients map[*client]struct{}
	rooms   map[string]map[*client]struct{}
}

// New creates a hub; call Run to start it
func New(cfg *Config) (*Hub, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Session == nil {
		return nil, ErrNilSession
	}
	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	sendBuffer := cfg.SendBuffer
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}

	return &Hub{
		session:       cfg.Session,
		roomRepo:      cfg.RoomRepo,
		uuidGenerator: cfg.UUIDGenerator,
		reporter:      cfg.Reporter,
		archive:       cfg.Archive,
		logger:        logger,
		sendBuffer:    sendBuffer,
		register:      make(chan *client),
		unregister:    make(chan *client),
		inbound:       make(chan inbound),
		stats:         make(chan chan Stats),
		done:          make(chan struct{}),
		clients:       make(map[*client]struct{}),
		rooms:         make(map[string]map[*client]struct{}),
	}, nil
}

// Run processes events until ctx is done, then closes every connection
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			close(c.send)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			h.drop(ctx, c)
		case in := <-h.inbound:
			if _, ok := h.clients[in.client]; !ok {
				continue
			}
			h.handle(ctx, in.client, in.msg)
		case reply := <-h.stats:
			reply <- h.snapshot(ctx)
		}
	}
}

// Stats asks the hub for its current counts
func (h *Hub) Stats(ctx context.Context) (Stats, error) {
	reply := make(chan Stats, 1)
	select {
	case h.stats <- reply:
	case <-h.done:
		return Stats{}, errors.New("hub stopped")
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
	return <-reply, nil
}

func (h *Hub) snapshot(ctx context.Context) Stats {
	stats := Stats{Connections: len(h.clients)}
	rooms, err := h.roomRepo.ListRooms(ctx)
	if err != nil {
		h.logger.Printf("failed to list rooms: %v", err)
		return stats
	}
	stats.Rooms = len(rooms)
	return stats
}

func (h *Hub) handle(ctx context.Context, c *client, msg *protocol.ClientMessage) {
	out, err := h.dispatch(ctx, c, msg)
	if err != nil {
		h.fail(ctx, c, msg.Ev, err)
		return
	}
	h.deliver(ctx, c, out)
}

// dispatch routes one inbound event to the session service
func (h *Hub) dispatch(ctx context.Context, c *client, msg *protocol.ClientMessage) (*session.Output, error) {
	switch msg.Ev {
	case protocol.EvCreate:
		out, err := h.session.CreateRoom(ctx, &session.CreateRoomInput{
			PlayerName:    msg.PlayerName,
			RoomPassword:  msg.RoomPassword,
			AdminPassword: msg.AdminPassword,
		})
		if err != nil {
			return nil, err
		}
		h.logger.Printf("room %s created by %s", out.RoomID, msg.PlayerName)
		return &out.Output, nil
	case protocol.EvJoin:
		if c.joined() {
			return nil, session.ErrAlreadyJoined
		}
		out, err := h.session.JoinRoom(ctx, &session.JoinRoomInput{
			RoomID:     msg.RoomID,
			PlayerName: msg.PlayerName,
			Password:   msg.Password,
			Admin:      msg.Admin,
		})
		if err != nil {
			return nil, err
		}
		h.bind(c, out.RoomID, out.PlayerName)
		return &out.Output, nil
	}

	if !c.joined() {
		return nil, session.ErrNotInRoom
	}

	switch msg.Ev {
	case protocol.EvPlayers:
		return h.session.UpdatePlayers(ctx, &session.UpdatePlayersInput{RoomID: c.roomID, PlayerName: c.name, Players: msg.Players})
	case protocol.EvCoins:
		return h.session.SetCoins(ctx, &session.SetCoinsInput{RoomID: c.roomID, Coins: *msg.Coins})
	case protocol.EvTask:
		return h.session.SubmitTask(ctx, &session.SubmitTaskInput{RoomID: c.roomID, PlayerName: c.name, Task: msg.Task})
	case protocol.EvDice:
		return h.session.RollDice(ctx, &session.RollDiceInput{RoomID: c.roomID, NumberOfDices: msg.NumberOfDices})
	case protocol.EvCurse:
		return h.session.UpdateCurse(ctx, &session.UpdateCurseInput{RoomID: c.roomID, Curse: msg.Curse})
	case protocol.EvGame:
		return h.session.SetPhase(ctx, &session.SetPhaseInput{RoomID: c.roomID, State: msg.State})
	case protocol.EvFound:
		return h.session.MarkFound(ctx, &session.MarkFoundInput{RoomID: c.roomID, PlayerName: c.name})
	case protocol.EvGPS:
		return h.session.UpdateGPS(ctx, &session.UpdateGPSInput{RoomID: c.roomID, PlayerName: c.name, Coords: msg.Coords})
	}

	return nil, protocol.ErrUnknownEvent
}

// fail tells the sender why its event was rejected
func (h *Hub) fail(ctx context.Context, c *client, ev protocol.EventName, err error) {
	var reply protocol.Event
	switch {
	case errors.Is(err, session.ErrPlayerBanned):
		reply = protocol.Banned()
	case errors.Is(err, session.ErrPoolExhausted):
		h.logger.Printf("client %s: %s rejected: %v", c.id, ev, err)
		return
	default:
		reply = protocol.Error(err.Error())
	}

	if !h.send(c, reply) {
		h.logger.Printf("client %s is not keeping up, disconnecting", c.id)
		h.drop(ctx, c)
	}
}

// deliver fans out an event's deliveries in order and forwards its reports.
// Sender frames wait up to writeWait for queue space so a long join snapshot
// is not mistaken for a stalled reader. Connections of a banned player are
// closed once their frames are queued.
func (h *Hub) deliver(ctx context.Context, sender *client, out *session.Output) {
	var slow, banned []*client
	stalled := make(map[*client]bool)

	for _, d := range out.Deliveries {
		data, err := protocol.Encode(d.Event)
		if err != nil {
			h.logger.Printf("dropping %s delivery: %v", d.Event.Name(), err)
			continue
		}

		switch d.Scope {
		case protocol.ScopeSender:
			if sender == nil || stalled[sender] {
				continue
			}
			if !sender.enqueueWait(data, writeWait) {
				stalled[sender] = true
				slow = append(slow, sender)
			}
		case protocol.ScopeRoom, protocol.ScopePlayer:
			for c := range h.rooms[d.RoomID] {
				if d.Scope == protocol.ScopePlayer && c.name != d.PlayerName {
					continue
				}
				if d.Scope == protocol.ScopePlayer && d.Event.Name() == protocol.EvBanned {
					banned = append(banned, c)
				}
				if stalled[c] {
					continue
				}
				if !c.enqueue(data) {
					stalled[c] = true
					slow = append(slow, c)
				}
			}
		}
	}

	for _, report := range out.Reports {
		if h.reporter == nil {
			continue
		}
		if !h.reporter.Submit(report) {
			h.logger.Printf("report %s for room %s was not accepted", report.Kind, report.RoomID)
		}
	}

	for _, c := range slow {
		h.logger.Printf("client %s is not keeping up, disconnecting", c.id)
		h.drop(ctx, c)
	}
	for _, c := range banned {
		h.logger.Printf("client %s: %s was banned from room %s, disconnecting", c.id, c.name, c.roomID)
		h.drop(ctx, c)
	}
}

// send queues one event for c; false means c is not keeping up
func (h *Hub) send(c *client, ev protocol.Event) bool {
	data, err := protocol.Encode(ev)
	if err != nil {
		h.logger.Printf("dropping %s: %v", ev.Name(), err)
		return true
	}
	return c.enqueue(data)
}

func (h *Hub) bind(c *client, roomID, name string) {
	c.roomID = roomID
	c.name = name

	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[*client]struct{})
		h.rooms[roomID] = members
	}
	members[c] = struct{}{}
}

// drop forgets a connection and releases its room seat. Safe to call more
// than once for the same client.
func (h *Hub) drop(ctx context.Context, c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)

	if !c.joined() {
		return
	}

	members := h.rooms[c.roomID]
	delete(members, c)

	stillConnected := false
	for other := range members {
		if other.name == c.name {
			stillConnected = true
			break
		}
	}

	out, err := h.session.Disconnect(ctx, &session.DisconnectInput{
		RoomID:               c.roomID,
		PlayerName:           c.name,
		PlayerStillConnected: stillConnected,
	})
	if err != nil {
		h.logger.Printf("failed to disconnect %s from room %s: %v", c.name, c.roomID, err)
		return
	}

	if out.RoomClosed {
		delete(h.rooms, c.roomID)
		h.logger.Printf("room %s closed", c.roomID)
	}
	h.deliver(ctx, nil, &out.Output)
}
