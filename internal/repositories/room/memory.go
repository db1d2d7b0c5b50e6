package room

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/KirkDiggler/hideandseek/internal/models"
)

const (
	// MinRoomID and MaxRoomID bound the identifier pool
	MinRoomID = 100
	MaxRoomID = 998
)

var (
	// ErrRoomNotFound is returned when no live room has the requested ID
	ErrRoomNotFound = errors.New("room not found")

	// ErrPoolExhausted is returned when every room ID is in use
	ErrPoolExhausted = errors.New("no room ids available")
)

// Config holds configuration for the in-memory room repository
type Config struct {
	// Optional seed for the id draw, for testing
	Seed int64
}

// memoryRepository keeps rooms resident in the process. It is not safe for
// concurrent use; callers serialize access.
type memoryRepository struct {
	rooms  map[string]*models.Room
	pool   []string
	random *rand.Rand
}

// NewMemory creates an in-memory room repository with a full identifier pool
func NewMemory(cfg *Config) *memoryRepository {
	seed := time.Now().UnixNano()
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	}

	pool := make([]string, 0, MaxRoomID-MinRoomID+1)
	for id := MinRoomID; id <= MaxRoomID; id++ {
		pool = append(pool, strconv.Itoa(id))
	}

	return &memoryRepository{
		rooms:  make(map[string]*models.Room),
		pool:   pool,
		random: rand.New(rand.NewSource(seed)),
	}
}

// CreateRoom draws an unused identifier uniformly at random
func (r *memoryRepository) CreateRoom(ctx context.Context, input *CreateRoomInput) (*models.Room, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(r.pool) == 0 {
		return nil, ErrPoolExhausted
	}

	// swap-remove keeps the draw O(1); pool order carries no meaning
	i := r.random.Intn(len(r.pool))
	id := r.pool[i]
	last := len(r.pool) - 1
	r.pool[i] = r.pool[last]
	r.pool = r.pool[:last]

	room := models.NewRoom(id, input.AdminName, input.RoomPassword, input.AdminPassword)
	r.rooms[id] = room

	return room, nil
}

// GetRoom retrieves a live room by ID
func (r *memoryRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrRoomNotFound
	}

	room, ok := r.rooms[input.RoomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	return room, nil
}

// DeleteRoom removes a room and recycles its identifier
func (r *memoryRepository) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil || input.RoomID == "" {
		return ErrRoomNotFound
	}

	if _, ok := r.rooms[input.RoomID]; !ok {
		return ErrRoomNotFound
	}

	delete(r.rooms, input.RoomID)
	r.pool = append(r.pool, input.RoomID)

	return nil
}

// ListRooms returns every live room ordered by ID
func (r *memoryRepository) ListRooms(ctx context.Context) ([]*models.Room, error) {
	rooms := make([]*models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

// Available returns how many identifiers are left in the pool
func (r *memoryRepository) Available() int {
	return len(r.pool)
}
