package models

// Role is a player's part in the game
type Role string

const (
	RoleNone   Role = "none"
	RoleAdmin  Role = "admin"
	RoleSeeker Role = "seeker"
	RoleHider  Role = "hider"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleNone, RoleAdmin, RoleSeeker, RoleHider:
		return true
	}
	return false
}

// Coords is a GPS fix as reported by a phone
type Coords struct {
	Latitude  float64 `msgpack:"latitude" json:"latitude"`
	Longitude float64 `msgpack:"longitude" json:"longitude"`
	Accuracy  float64 `msgpack:"accuracy" json:"accuracy"`
}

// Player represents a participant within a room
type Player struct {
	// Name is unique within the room and identifies the player on rejoin
	Name string `msgpack:"name" json:"name"`

	// Role is the player's part in the game
	Role Role `msgpack:"role" json:"role"`

	// Banned players can never join the room again
	Banned bool `msgpack:"banned" json:"banned"`

	// Disconnected is set when the player's last connection closed
	Disconnected bool `msgpack:"disconnected" json:"disconnected"`

	// Coords is the last known position
	Coords *Coords `msgpack:"coords,omitempty" json:"coords,omitempty"`

	// StartCoords is the position captured when the round started
	StartCoords *Coords `msgpack:"start_coords,omitempty" json:"start_coords,omitempty"`
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	if p.Coords != nil {
		coords := *p.Coords
		c.Coords = &coords
	}
	if p.StartCoords != nil {
		coords := *p.StartCoords
		c.StartCoords = &coords
	}
	return &c
}
