package room

type CreateRoomInput struct {
	AdminName     string
	RoomPassword  string
	AdminPassword string
}

type GetRoomInput struct {
	RoomID string
}

type DeleteRoomInput struct {
	RoomID string
}
