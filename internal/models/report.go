package models

import "time"

// ReportKind distinguishes the lifecycle moments that get archived
type ReportKind string

const (
	// ReportKindRoundEnded is emitted when a round reaches the ended phase
	ReportKindRoundEnded ReportKind = "round_ended"

	// ReportKindRoomClosed is emitted when the last connection leaves a room
	ReportKindRoomClosed ReportKind = "room_closed"
)

// RoomReport is a point-in-time summary of a room handed to background sinks.
// Reports outlive the room, so they leave out coins and player locations.
type RoomReport struct {
	ID        string          `json:"id"`
	Kind      ReportKind      `json:"kind"`
	RoomID    string          `json:"room_id"`
	Found     FoundState      `json:"found"`
	Game      GamePhase       `json:"game"`
	StartedAt *int64          `json:"started_at,omitempty"`
	EndedAt   *int64          `json:"ended_at,omitempty"`
	Players   []*ReportPlayer `json:"players"`
	Tasks     []*Task         `json:"tasks"`
	Curses    []*Curse        `json:"curses"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReportPlayer is the roster entry kept in a report
type ReportPlayer struct {
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Banned       bool   `json:"banned,omitempty"`
	Disconnected bool   `json:"disconnected,omitempty"`
}

// ReportRoster returns the roster as it is written into reports
func (r *Room) ReportRoster() []*ReportPlayer {
	roster := make([]*ReportPlayer, 0, len(r.Players))
	for _, p := range r.Players {
		roster = append(roster, &ReportPlayer{
			Name:         p.Name,
			Role:         p.Role,
			Banned:       p.Banned,
			Disconnected: p.Disconnected,
		})
	}
	return roster
}

// Duration returns the played time of the round, zero when unknown
func (r *RoomReport) Duration() time.Duration {
	if r.StartedAt == nil || r.EndedAt == nil {
		return 0
	}
	return time.Duration(*r.EndedAt-*r.StartedAt) * time.Millisecond
}
