package protocol

// Scope selects the audience of a delivery
type Scope int

const (
	// ScopeSender addresses only the connection that sent the inbound event
	ScopeSender Scope = iota

	// ScopeRoom addresses every connection joined to RoomID
	ScopeRoom

	// ScopePlayer addresses every connection joined to RoomID as PlayerName
	ScopePlayer
)

func (s Scope) String() string {
	switch s {
	case ScopeSender:
		return "sender"
	case ScopeRoom:
		return "room"
	case ScopePlayer:
		return "player"
	}
	return "unknown"
}

// Delivery is one outbound event together with its audience
type Delivery struct {
	Scope      Scope
	RoomID     string
	PlayerName string
	Event      Event
}

func ToSender(ev Event) *Delivery {
	return &Delivery{Scope: ScopeSender, Event: ev}
}

func ToRoom(roomID string, ev Event) *Delivery {
	return &Delivery{Scope: ScopeRoom, RoomID: roomID, Event: ev}
}

func ToPlayer(roomID, name string, ev Event) *Delivery {
	return &Delivery{Scope: ScopePlayer, RoomID: roomID, PlayerName: name, Event: ev}
}
