package room

import (
	"context"

	"github.com/KirkDiggler/hideandseek/internal/models"
)

// Repository owns the live rooms and the pool of room identifiers
type Repository interface {
	// CreateRoom allocates an identifier and stores a new room with its admin
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*models.Room, error)

	// GetRoom retrieves a live room by ID
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error)

	// DeleteRoom removes a room and returns its identifier to the pool
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) error

	// ListRooms returns every live room
	ListRooms(ctx context.Context) ([]*models.Room, error)
}
