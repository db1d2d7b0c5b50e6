package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/hideandseek/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/hideandseek/internal/common/uuid/mocks"
	"github.com/KirkDiggler/hideandseek/internal/dice"
	diceMocks "github.com/KirkDiggler/hideandseek/internal/dice/mocks"
	"github.com/KirkDiggler/hideandseek/internal/geo"
	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/protocol"
	roomRepo "github.com/KirkDiggler/hideandseek/internal/repositories/room"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// metersPerDegree is one degree of latitude for the radius geo uses
var metersPerDegree = geo.EarthRadiusKm * 1000 * math.Pi / 180

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockClock      *clockMocks.MockClock
	mockDiceRoller *diceMocks.MockRoller
	mockUUID       *uuidMocks.MockUUID
	roomRepo       roomRepo.Repository
	service        Service
	ctx            context.Context

	// Test data
	now    time.Time
	roomID string
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockDiceRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.roomRepo = roomRepo.NewMemory(&roomRepo.Config{Seed: 7})
	s.ctx = context.Background()

	s.now = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("report-id").AnyTimes()

	svc, err := New(&Config{
		RoomRepo:      s.roomRepo,
		DiceRoller:    s.mockDiceRoller,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc

	created, err := s.service.CreateRoom(s.ctx, &CreateRoomInput{
		PlayerName:    "Alice",
		RoomPassword:  "r",
		AdminPassword: "a",
	})
	s.Require().NoError(err)
	s.roomID = created.RoomID
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

// helpers

func (s *SessionServiceTestSuite) room() *models.Room {
	room, err := s.roomRepo.GetRoom(s.ctx, &roomRepo.GetRoomInput{RoomID: s.roomID})
	s.Require().NoError(err)
	return room
}

func (s *SessionServiceTestSuite) join(name string, admin bool) *JoinRoomOutput {
	password := "r"
	if admin {
		password = "a"
	}
	out, err := s.service.JoinRoom(s.ctx, &JoinRoomInput{
		RoomID:     s.roomID,
		PlayerName: name,
		Password:   password,
		Admin:      admin,
	})
	s.Require().NoError(err)
	return out
}

func (s *SessionServiceTestSuite) setRole(name string, role models.Role) {
	s.room().FindPlayer(name).Role = role
}

func (s *SessionServiceTestSuite) place(name string, lat, lon float64) {
	_, err := s.service.UpdateGPS(s.ctx, &UpdateGPSInput{
		RoomID:     s.roomID,
		PlayerName: name,
		Coords:     &models.Coords{Latitude: lat, Longitude: lon, Accuracy: 5},
	})
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) setCoins(coins int) {
	_, err := s.service.SetCoins(s.ctx, &SetCoinsInput{RoomID: s.roomID, Coins: coins})
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) phase(state models.GamePhase) *Output {
	out, err := s.service.SetPhase(s.ctx, &SetPhaseInput{RoomID: s.roomID, State: state})
	s.Require().NoError(err)
	return out
}

func (s *SessionServiceTestSuite) task(name, key string, state models.TaskState) (*Output, error) {
	return s.service.SubmitTask(s.ctx, &SubmitTaskInput{
		RoomID:     s.roomID,
		PlayerName: name,
		Task:       &models.Task{Task: key, State: state},
	})
}

func names(deliveries []*protocol.Delivery) []protocol.EventName {
	out := make([]protocol.EventName, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, d.Event.Name())
	}
	return out
}

func find[T protocol.Event](deliveries []*protocol.Delivery) []T {
	var out []T
	for _, d := range deliveries {
		if ev, ok := d.Event.(T); ok {
			out = append(out, ev)
		}
	}
	return out
}

// create / join

func (s *SessionServiceTestSuite) TestCreateRoomRepliesToSender() {
	out, err := s.service.CreateRoom(s.ctx, &CreateRoomInput{PlayerName: "Zoe", RoomPassword: "x", AdminPassword: "y"})
	s.Require().NoError(err)
	s.NotEqual(s.roomID, out.RoomID)

	s.Require().Len(out.Deliveries, 1)
	s.Equal(protocol.ScopeSender, out.Deliveries[0].Scope)
	s.Equal(out.RoomID, out.Deliveries[0].Event.(*protocol.CreateEvent).RoomID)
}

func (s *SessionServiceTestSuite) TestCreateRoomPoolExhausted() {
	for {
		_, err := s.service.CreateRoom(s.ctx, &CreateRoomInput{PlayerName: "Zoe"})
		if err != nil {
			s.ErrorIs(err, ErrPoolExhausted)
			return
		}
	}
}

func (s *SessionServiceTestSuite) TestJoinSyncsSenderThenBroadcastsPlayers() {
	s.join("Alice", true)
	out := s.join("Bob", false)

	s.Equal(s.roomID, out.RoomID)
	s.Equal("Bob", out.PlayerName)
	s.Equal([]protocol.EventName{
		protocol.EvJoin, protocol.EvCoins, protocol.EvGame, protocol.EvPlayers,
	}, names(out.Deliveries))

	game := find[*protocol.GameEvent](out.Deliveries)[0]
	s.Equal(models.GamePhaseWaiting, game.State)
	s.Equal(models.GamePhaseWaiting, game.Previous)

	last := out.Deliveries[len(out.Deliveries)-1]
	s.Equal(protocol.ScopeRoom, last.Scope)
	players := last.Event.(*protocol.PlayersEvent).Players
	s.Require().Len(players, 2)
	s.Equal("Alice", players[0].Name)
	s.Equal(models.RoleAdmin, players[0].Role)
	s.Equal("Bob", players[1].Name)
	s.Equal(models.RoleNone, players[1].Role)

	s.Equal(2, s.room().Connections)
}

func (s *SessionServiceTestSuite) TestJoinSnapshotIncludesHistoryAndTimestamps() {
	s.join("Alice", true)
	s.join("Bob", false)
	s.setCoins(200)
	s.phase(models.GamePhaseIngame)

	_, err := s.task("Bob", "photos1", models.TaskStateRequested)
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	s.phase(models.GamePhasePaused)

	out := s.join("Carol", false)
	s.Equal([]protocol.EventName{
		protocol.EvJoin, protocol.EvCoins, protocol.EvTask, protocol.EvGame,
		protocol.EvStarted, protocol.EvEnded, protocol.EvPlayers,
	}, names(out.Deliveries))

	task := find[*protocol.TaskEvent](out.Deliveries)[0]
	s.True(task.NewTask)
	s.Equal("photos1", task.Task.Task)

	for _, d := range out.Deliveries[:6] {
		s.Equal(protocol.ScopeSender, d.Scope)
	}
}

func (s *SessionServiceTestSuite) TestJoinUnknownRoom() {
	_, err := s.service.JoinRoom(s.ctx, &JoinRoomInput{RoomID: "999", PlayerName: "Bob", Password: "r"})
	s.ErrorIs(err, ErrRoomNotFound)
}

func (s *SessionServiceTestSuite) TestJoinWrongPasswordLeavesRosterUntouched() {
	s.join("Alice", true)
	before := s.room().SnapshotPlayers()

	cases := []*JoinRoomInput{
		{RoomID: s.roomID, PlayerName: "Bob", Password: "a"},
		{RoomID: s.roomID, PlayerName: "Bob", Password: "r", Admin: true},
		{RoomID: s.roomID, PlayerName: "Alice", Password: "wrong", Admin: true},
	}
	for _, input := range cases {
		_, err := s.service.JoinRoom(s.ctx, input)
		s.ErrorIs(err, ErrWrongPassword)
	}

	s.Equal(before, s.room().SnapshotPlayers())
	s.Equal(1, s.room().Connections)
}

func (s *SessionServiceTestSuite) TestBannedPlayerCannotJoin() {
	s.join("Bob", false)
	s.room().FindPlayer("Bob").Banned = true

	_, err := s.service.JoinRoom(s.ctx, &JoinRoomInput{RoomID: s.roomID, PlayerName: "Bob", Password: "r"})
	s.ErrorIs(err, ErrPlayerBanned)

	// a wrong password is reported first, but it is still no success
	_, err = s.service.JoinRoom(s.ctx, &JoinRoomInput{RoomID: s.roomID, PlayerName: "Bob", Password: "nope"})
	s.Error(err)

	_, err = s.service.JoinRoom(s.ctx, &JoinRoomInput{RoomID: s.roomID, PlayerName: "Bob", Password: "a", Admin: true})
	s.ErrorIs(err, ErrPlayerBanned)
}

func (s *SessionServiceTestSuite) TestRoleConflictsOnRejoin() {
	s.join("Bob", false)

	_, err := s.service.JoinRoom(s.ctx, &JoinRoomInput{RoomID: s.roomID, PlayerName: "Alice", Password: "r"})
	s.ErrorIs(err, ErrAdminMustBeAdmin)

	_, err = s.service.JoinRoom(s.ctx, &JoinRoomInput{RoomID: s.roomID, PlayerName: "Bob", Password: "a", Admin: true})
	s.ErrorIs(err, ErrNotAnAdmin)
}

func (s *SessionServiceTestSuite) TestJoinAsNewAdmin() {
	s.join("Dave", true)
	s.Equal(models.RoleAdmin, s.room().FindPlayer("Dave").Role)
}

func (s *SessionServiceTestSuite) TestRejoinClearsDisconnected() {
	s.join("Alice", true)
	s.join("Bob", false)

	_, err := s.service.Disconnect(s.ctx, &DisconnectInput{RoomID: s.roomID, PlayerName: "Bob"})
	s.Require().NoError(err)
	s.True(s.room().FindPlayer("Bob").Disconnected)

	s.join("Bob", false)
	s.False(s.room().FindPlayer("Bob").Disconnected)
	s.Len(s.room().Players, 2)
}

// disconnect

func (s *SessionServiceTestSuite) TestLastDisconnectDestroysRoom() {
	s.join("Alice", true)

	out, err := s.service.Disconnect(s.ctx, &DisconnectInput{RoomID: s.roomID, PlayerName: "Alice"})
	s.Require().NoError(err)
	s.True(out.RoomClosed)
	s.Empty(out.Deliveries)
	s.Require().Len(out.Reports, 1)
	s.Equal(models.ReportKindRoomClosed, out.Reports[0].Kind)
	s.Equal(s.roomID, out.Reports[0].RoomID)

	_, err = s.roomRepo.GetRoom(s.ctx, &roomRepo.GetRoomInput{RoomID: s.roomID})
	s.ErrorIs(err, roomRepo.ErrRoomNotFound)
}

func (s *SessionServiceTestSuite) TestDisconnectKeepsPlayerWithOtherConnection() {
	s.join("Alice", true)
	s.join("Bob", false)
	s.join("Bob", false)

	out, err := s.service.Disconnect(s.ctx, &DisconnectInput{
		RoomID:               s.roomID,
		PlayerName:           "Bob",
		PlayerStillConnected: true,
	})
	s.Require().NoError(err)
	s.False(out.RoomClosed)
	s.False(s.room().FindPlayer("Bob").Disconnected)
	s.Equal([]protocol.EventName{protocol.EvPlayers}, names(out.Deliveries))
}

// players / coins / gps

func (s *SessionServiceTestSuite) TestUpdatePlayersRequiresAdmin() {
	s.join("Bob", false)

	_, err := s.service.UpdatePlayers(s.ctx, &UpdatePlayersInput{
		RoomID:     s.roomID,
		PlayerName: "Bob",
		Players:    []*models.Player{{Name: "Bob", Role: models.RoleSeeker}},
	})
	s.ErrorIs(err, ErrAdminOnly)
	s.Equal(models.RoleNone, s.room().FindPlayer("Bob").Role)
}

func (s *SessionServiceTestSuite) TestUpdatePlayersAppliesRolesAndBans() {
	s.join("Alice", true)
	s.join("Bob", false)
	s.join("Carol", false)
	s.place("Carol", 1, 1)

	out, err := s.service.UpdatePlayers(s.ctx, &UpdatePlayersInput{
		RoomID:     s.roomID,
		PlayerName: "Alice",
		Players: []*models.Player{
			{Name: "Alice", Role: models.RoleHider, Banned: true},
			{Name: "Bob", Role: models.RoleSeeker},
			{Name: "Carol", Role: models.RoleAdmin, Banned: true, Disconnected: true},
			{Name: "Mallory", Role: models.RoleHider},
		},
	})
	s.Require().NoError(err)

	room := s.room()
	s.Equal(models.RoleAdmin, room.FindPlayer("Alice").Role)
	s.False(room.FindPlayer("Alice").Banned)
	s.Equal(models.RoleSeeker, room.FindPlayer("Bob").Role)
	s.Equal(models.RoleNone, room.FindPlayer("Carol").Role)
	s.True(room.FindPlayer("Carol").Banned)
	s.False(room.FindPlayer("Carol").Disconnected)
	s.NotNil(room.FindPlayer("Carol").Coords)
	s.Nil(room.FindPlayer("Mallory"))
	s.Len(room.Players, 3)

	s.Require().Len(out.Deliveries, 2)
	s.Equal(protocol.ScopePlayer, out.Deliveries[0].Scope)
	s.Equal("Carol", out.Deliveries[0].PlayerName)
	s.Equal(protocol.EvBanned, out.Deliveries[0].Event.Name())
	s.Equal(protocol.ScopeRoom, out.Deliveries[1].Scope)
	s.Equal(protocol.EvPlayers, out.Deliveries[1].Event.Name())

	// already banned players are not notified twice
	again, err := s.service.UpdatePlayers(s.ctx, &UpdatePlayersInput{
		RoomID:     s.roomID,
		PlayerName: "Alice",
		Players:    []*models.Player{{Name: "Carol", Role: models.RoleNone, Banned: true}},
	})
	s.Require().NoError(err)
	s.Equal([]protocol.EventName{protocol.EvPlayers}, names(again.Deliveries))
}

func (s *SessionServiceTestSuite) TestSetCoinsBroadcasts() {
	out, err := s.service.SetCoins(s.ctx, &SetCoinsInput{RoomID: s.roomID, Coins: 75})
	s.Require().NoError(err)
	s.Equal(75, s.room().Coins)
	s.Equal(75, find[*protocol.CoinsEvent](out.Deliveries)[0].Coins)
}

func (s *SessionServiceTestSuite) TestUpdateGPSRelaysToRoom() {
	s.join("Bob", false)

	out, err := s.service.UpdateGPS(s.ctx, &UpdateGPSInput{
		RoomID:     s.roomID,
		PlayerName: "Bob",
		Coords:     &models.Coords{Latitude: 52.5, Longitude: 13.4, Accuracy: 8},
	})
	s.Require().NoError(err)

	s.Equal(52.5, s.room().FindPlayer("Bob").Coords.Latitude)
	gps := find[*protocol.GPSEvent](out.Deliveries)[0]
	s.Equal("Bob", gps.PlayerName)
	s.Equal(13.4, gps.Coords.Longitude)
	s.Equal(protocol.ScopeRoom, out.Deliveries[0].Scope)
}

func (s *SessionServiceTestSuite) TestUpdateGPSUnknownPlayer() {
	_, err := s.service.UpdateGPS(s.ctx, &UpdateGPSInput{RoomID: s.roomID, PlayerName: "Ghost", Coords: &models.Coords{}})
	s.ErrorIs(err, ErrPlayerNotFound)
}

// phases

func (s *SessionServiceTestSuite) TestStartRound() {
	s.join("Alice", true)
	s.join("Bob", false)
	s.place("Bob", 10, 20)

	out := s.phase(models.GamePhaseIngame)

	s.Equal([]protocol.EventName{protocol.EvGame, protocol.EvStarted}, names(out.Deliveries))
	game := out.Deliveries[0].Event.(*protocol.GameEvent)
	s.Equal(models.GamePhaseIngame, game.State)
	s.Equal(models.GamePhaseWaiting, game.Previous)
	s.Equal(s.now.UnixMilli(), out.Deliveries[1].Event.(*protocol.StartedEvent).StartedAt)

	room := s.room()
	s.Equal(models.GamePhaseIngame, room.Game)
	s.Require().NotNil(room.StartedAt)
	s.Nil(room.EndedAt)
	s.Equal(&models.Coords{Latitude: 10, Longitude: 20, Accuracy: 5}, room.FindPlayer("Bob").StartCoords)
	s.Nil(room.FindPlayer("Alice").StartCoords)
}

func (s *SessionServiceTestSuite) TestStartSkipsDisconnectedPlayers() {
	s.join("Alice", true)
	s.join("Bob", false)
	s.place("Bob", 10, 20)
	_, err := s.service.Disconnect(s.ctx, &DisconnectInput{RoomID: s.roomID, PlayerName: "Bob"})
	s.Require().NoError(err)

	s.phase(models.GamePhaseIngame)
	s.Nil(s.room().FindPlayer("Bob").StartCoords)
}

func (s *SessionServiceTestSuite) TestPauseAndResumePreservesElapsed() {
	s.phase(models.GamePhaseIngame)
	start := s.now

	s.now = start.Add(10 * time.Minute)
	out := s.phase(models.GamePhasePaused)
	s.Equal([]protocol.EventName{protocol.EvGame, protocol.EvEnded}, names(out.Deliveries))
	s.Equal(s.now.UnixMilli(), *s.room().EndedAt)

	s.now = start.Add(25 * time.Minute)
	out = s.phase(models.GamePhaseIngame)

	room := s.room()
	s.Nil(room.EndedAt)
	// 10 minutes played, 15 paused
	s.Equal(start.Add(15*time.Minute).UnixMilli(), *room.StartedAt)
	s.Equal(10*time.Minute, s.now.Sub(time.UnixMilli(*room.StartedAt)))
	s.Equal(*room.StartedAt, find[*protocol.StartedEvent](out.Deliveries)[0].StartedAt)
}

func (s *SessionServiceTestSuite) TestNewRoundMarksHistoryOld() {
	s.join("Alice", true)
	s.setCoins(100)
	s.phase(models.GamePhaseIngame)

	_, err := s.task("Alice", "photos1", models.TaskStateRequested)
	s.Require().NoError(err)
	_, err = s.task("Alice", "photos1", models.TaskStateConfirmed)
	s.Require().NoError(err)

	s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(4)
	_, err = s.service.RollDice(s.ctx, &RollDiceInput{RoomID: s.roomID, NumberOfDices: "1"})
	s.Require().NoError(err)

	s.phase(models.GamePhaseEnded)
	s.phase(models.GamePhaseIngame)

	room := s.room()
	s.True(room.Tasks[0].Old)
	s.True(room.PendingCurse.Old)
}

func (s *SessionServiceTestSuite) TestResumeDoesNotMarkOld() {
	s.join("Alice", true)
	s.phase(models.GamePhaseIngame)
	_, err := s.task("Alice", "photos1", models.TaskStateRequested)
	s.Require().NoError(err)

	s.phase(models.GamePhasePaused)
	s.phase(models.GamePhaseIngame)

	s.False(s.room().PendingTask.Old)
}

func (s *SessionServiceTestSuite) TestEndedEmitsReport() {
	s.phase(models.GamePhaseIngame)
	out := s.phase(models.GamePhaseEnded)

	s.Equal([]protocol.EventName{protocol.EvGame, protocol.EvEnded}, names(out.Deliveries))
	s.Require().Len(out.Reports, 1)
	s.Equal(models.ReportKindRoundEnded, out.Reports[0].Kind)
	s.Equal(models.GamePhaseEnded, out.Reports[0].Game)
	s.Equal([]*models.ReportPlayer{{Name: "Alice", Role: models.RoleAdmin}}, out.Reports[0].Players)
}

func (s *SessionServiceTestSuite) TestAbortOnlyBroadcasts() {
	s.phase(models.GamePhaseIngame)
	out := s.phase(models.GamePhaseAborted)

	s.Equal([]protocol.EventName{protocol.EvGame}, names(out.Deliveries))
	s.Empty(out.Reports)
	s.Nil(s.room().EndedAt)
}

func (s *SessionServiceTestSuite) TestInvalidTransitions() {
	cases := []models.GamePhase{models.GamePhasePaused, models.GamePhaseEnded, models.GamePhaseAborted, models.GamePhaseWaiting}
	for _, to := range cases {
		_, err := s.service.SetPhase(s.ctx, &SetPhaseInput{RoomID: s.roomID, State: to})
		var transition *TransitionError
		s.Require().True(errors.As(err, &transition), "waiting -> %s", to)
		s.Equal(models.GamePhaseWaiting, transition.From)
	}
	s.Equal(models.GamePhaseWaiting, s.room().Game)
}

// found

func (s *SessionServiceTestSuite) found(name string) *Output {
	out, err := s.service.MarkFound(s.ctx, &MarkFoundInput{RoomID: s.roomID, PlayerName: name})
	s.Require().NoError(err)
	return out
}

func (s *SessionServiceTestSuite) TestFoundBothEndsRound() {
	s.join("Bob", false)
	s.join("Carol", false)
	s.setRole("Bob", models.RoleSeeker)
	s.setRole("Carol", models.RoleHider)
	s.phase(models.GamePhaseIngame)

	out := s.found("Bob")
	s.Equal([]protocol.EventName{protocol.EvFound}, names(out.Deliveries))
	s.Equal(models.FoundStateSeeker, s.room().Found)

	s.now = s.now.Add(time.Hour)
	out = s.found("Carol")
	s.Equal([]protocol.EventName{protocol.EvGame, protocol.EvEnded, protocol.EvFound}, names(out.Deliveries))

	game := out.Deliveries[0].Event.(*protocol.GameEvent)
	s.Equal(models.GamePhaseEnded, game.State)
	s.Equal(models.GamePhaseIngame, game.Previous)
	s.Len(find[*protocol.EndedEvent](out.Deliveries), 1)
	s.Equal(models.FoundStateBoth, find[*protocol.FoundEvent](out.Deliveries)[0].Found)
	s.Require().Len(out.Reports, 1)

	room := s.room()
	s.Equal(models.GamePhaseEnded, room.Game)
	s.Equal(s.now.UnixMilli(), *room.EndedAt)

	// both is terminal: another report changes nothing and ends nothing
	out = s.found("Bob")
	s.Equal([]protocol.EventName{protocol.EvFound}, names(out.Deliveries))
	s.Equal(models.FoundStateBoth, s.room().Found)
}

func (s *SessionServiceTestSuite) TestFoundAfterAdminEndedKeepsRoundEnd() {
	s.join("Bob", false)
	s.join("Carol", false)
	s.setRole("Bob", models.RoleSeeker)
	s.setRole("Carol", models.RoleHider)
	s.phase(models.GamePhaseIngame)

	s.now = s.now.Add(time.Minute)
	out := s.phase(models.GamePhaseEnded)
	s.Require().Len(out.Reports, 1)
	endedAt := *s.room().EndedAt

	s.now = s.now.Add(time.Hour)
	out = s.found("Bob")
	s.Empty(out.Reports)
	out = s.found("Carol")
	s.Equal([]protocol.EventName{protocol.EvFound}, names(out.Deliveries))
	s.Empty(out.Reports)

	room := s.room()
	s.Equal(models.FoundStateBoth, room.Found)
	s.Equal(models.GamePhaseEnded, room.Game)
	s.Equal(endedAt, *room.EndedAt)
}

func (s *SessionServiceTestSuite) TestFoundHiderFirst() {
	s.join("Carol", false)
	s.setRole("Carol", models.RoleHider)

	s.found("Carol")
	s.Equal(models.FoundStateHider, s.room().Found)
	s.found("Carol")
	s.Equal(models.FoundStateHider, s.room().Found)
}

func (s *SessionServiceTestSuite) TestFoundIgnoresRolelessPlayers() {
	s.join("Bob", false)
	out := s.found("Bob")
	s.Equal(models.FoundStateNone, s.room().Found)
	s.Equal([]protocol.EventName{protocol.EvFound}, names(out.Deliveries))
}

func (s *SessionServiceTestSuite) TestNewRoundResetsFound() {
	s.join("Bob", false)
	s.join("Carol", false)
	s.setRole("Bob", models.RoleSeeker)
	s.setRole("Carol", models.RoleHider)
	s.phase(models.GamePhaseIngame)
	s.found("Bob")
	s.found("Carol")

	out := s.phase(models.GamePhaseIngame)
	s.Equal(models.FoundStateNone, s.room().Found)
	s.Equal([]protocol.EventName{protocol.EvGame, protocol.EvFound, protocol.EvStarted}, names(out.Deliveries))
}

// tasks

func (s *SessionServiceTestSuite) TestNonRadarLifecycleSupersedes() {
	s.join("Bob", false)

	out, err := s.task("Bob", "relative1", models.TaskStateRequested)
	s.Require().NoError(err)
	s.Equal([]protocol.EventName{protocol.EvTask}, names(out.Deliveries))
	s.False(find[*protocol.TaskEvent](out.Deliveries)[0].NewTask)
	s.Len(s.room().TaskHistory(), 1)

	out, err = s.task("Bob", "relative1", models.TaskStateCompleted)
	s.Require().NoError(err)
	s.Equal([]protocol.EventName{protocol.EvTask}, names(out.Deliveries))
	s.Len(s.room().TaskHistory(), 1)
	s.Equal(models.TaskStateCompleted, s.room().PendingTask.State)

	out, err = s.task("Bob", "relative1", models.TaskStateConfirmed)
	s.Require().NoError(err)
	s.Equal([]protocol.EventName{protocol.EvTask, protocol.EvCoins}, names(out.Deliveries))

	room := s.room()
	s.Len(room.TaskHistory(), 1)
	s.Nil(room.PendingTask)
	s.Equal(models.TaskStateConfirmed, room.Tasks[0].State)
	s.Equal(40, room.Coins)
}

func (s *SessionServiceTestSuite) TestTaskCoinsPerCategory() {
	cases := map[string]int{"photos1": 15, "oddball1": 10, "precision1": 10, "relative2": 40}
	total := 0
	for key, coins := range cases {
		_, err := s.task("Alice", key, models.TaskStateRequested)
		s.Require().NoError(err)
		_, err = s.task("Alice", key, models.TaskStateConfirmed)
		s.Require().NoError(err)
		total += coins
		s.Equal(total, s.room().Coins, key)
	}
}

func (s *SessionServiceTestSuite) TestTaskAdmission() {
	_, err := s.task("Alice", "photos1", models.TaskStateRequested)
	s.Require().NoError(err)

	_, err = s.task("Alice", "photos2", models.TaskStateRequested)
	s.ErrorIs(err, ErrTaskInFlight)

	_, err = s.task("Alice", "photos1", models.TaskStateConfirmed)
	s.Require().NoError(err)

	_, err = s.task("Alice", "photos1", models.TaskStateRequested)
	s.ErrorIs(err, ErrDuplicateTask)
	s.Len(s.room().Tasks, 1)
}

func (s *SessionServiceTestSuite) TestTaskBlockedByPendingCurse() {
	s.setCoins(50)
	s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(2)
	_, err := s.service.RollDice(s.ctx, &RollDiceInput{RoomID: s.roomID, NumberOfDices: "1"})
	s.Require().NoError(err)

	_, err = s.task("Alice", "photos1", models.TaskStateRequested)
	s.ErrorIs(err, ErrCurseBlocksTask)
	s.Nil(s.room().PendingTask)
}

func (s *SessionServiceTestSuite) TestTaskUpdateWithoutRequest() {
	_, err := s.task("Alice", "photos1", models.TaskStateCompleted)
	s.ErrorIs(err, ErrNoPendingTask)

	_, err = s.task("Alice", "photos1", models.TaskStateRequested)
	s.Require().NoError(err)

	_, err = s.task("Alice", "photos2", models.TaskStateConfirmed)
	s.ErrorIs(err, ErrNoPendingTask)
	s.Zero(s.room().Coins)
}

func (s *SessionServiceTestSuite) TestUnknownTask() {
	_, err := s.task("Alice", "radar3", models.TaskStateRequested)
	s.ErrorIs(err, ErrUnknownTask)
}

// radar

func (s *SessionServiceTestSuite) TestRadarCountsHidersInside() {
	s.join("Bob", false)
	s.join("Carol", false)
	s.join("Dan", false)
	s.setRole("Bob", models.RoleSeeker)
	s.setRole("Carol", models.RoleHider)
	s.setRole("Dan", models.RoleHider)

	s.place("Carol", 0, 0)
	s.place("Dan", 0.01, 0) // about 1.1 km away
	s.place("Bob", 3/metersPerDegree, 0)

	out, err := s.task("Bob", "radar50", models.TaskStateRequested)
	s.Require().NoError(err)
	s.Equal([]protocol.EventName{protocol.EvTask, protocol.EvCoins}, names(out.Deliveries))

	task := find[*protocol.TaskEvent](out.Deliveries)[0]
	s.True(task.NewTask)
	s.Equal(models.TaskStateConfirmed, task.Task.State)
	s.Equal("1 hiders are inside the seeker Bob's Radar 50m", task.Task.Result)

	room := s.room()
	s.Nil(room.PendingTask)
	s.Require().Len(room.Tasks, 1)
	s.Equal(30, room.Coins)
}

func (s *SessionServiceTestSuite) TestRadarInsideMeansStrictlyCloser() {
	s.join("Bob", false)
	s.join("Carol", false)
	s.setRole("Bob", models.RoleSeeker)
	s.setRole("Carol", models.RoleHider)

	seeker := models.Coords{Latitude: 47.3769, Longitude: 8.5417}
	hider := models.Coords{Latitude: 47.3770, Longitude: 8.5419}
	d := geo.DistanceMeters(hider, seeker)

	for _, radius := range []float64{5, 10, 25, 50} {
		got := countInside(seeker, []models.Coords{hider}, radius)
		want := 0
		if d < radius {
			want = 1
		}
		s.Equal(want, got, fmt.Sprintf("d=%f r=%f", d, radius))
	}

	// the exact boundary is outside
	s.Equal(0, countInside(seeker, []models.Coords{hider}, d))
}

func (s *SessionServiceTestSuite) TestRadarIgnoresDisconnectedAndUnplacedHiders() {
	s.join("Bob", false)
	s.join("Carol", false)
	s.join("Dan", false)
	s.setRole("Bob", models.RoleSeeker)
	s.setRole("Carol", models.RoleHider)
	s.setRole("Dan", models.RoleHider)
	s.place("Bob", 0, 0)
	s.place("Carol", 0, 0)
	s.room().FindPlayer("Carol").Disconnected = true

	out, err := s.task("Bob", "radar5000", models.TaskStateRequested)
	s.Require().NoError(err)

	// nobody usable: a warning to the sender, then the task still resolves
	s.Equal([]protocol.EventName{protocol.EvError, protocol.EvTask, protocol.EvCoins}, names(out.Deliveries))
	s.Equal(protocol.ScopeSender, out.Deliveries[0].Scope)
	s.Equal(ErrNoHiderGPS.Error(), out.Deliveries[0].Event.(*protocol.ErrorEvent).Error)
	s.Contains(find[*protocol.TaskEvent](out.Deliveries)[0].Task.Result, "0 hiders")
	s.Equal(30, s.room().Coins)
}

func (s *SessionServiceTestSuite) TestRadarNeedsSeekerGPS() {
	s.join("Bob", false)
	s.setRole("Bob", models.RoleSeeker)

	_, err := s.task("Bob", "radar5", models.TaskStateRequested)
	s.ErrorIs(err, ErrNoSeekerGPS)

	room := s.room()
	s.Empty(room.Tasks)
	s.Zero(room.Coins)
}

func (s *SessionServiceTestSuite) TestRadarCannotRepeat() {
	s.join("Bob", false)
	s.place("Bob", 0, 0)

	_, err := s.task("Bob", "radar10", models.TaskStateRequested)
	s.Require().NoError(err)

	_, err = s.task("Bob", "radar10", models.TaskStateConfirmed)
	s.ErrorIs(err, ErrDuplicateTask)
	s.Equal(30, s.room().Coins)
}

// dice and curses

func (s *SessionServiceTestSuite) roll(count string) (*Output, error) {
	return s.service.RollDice(s.ctx, &RollDiceInput{RoomID: s.roomID, NumberOfDices: count})
}

func (s *SessionServiceTestSuite) TestRollDiceInvalidCount() {
	s.setCoins(500)
	for _, count := range []string{"", "zero", "0", "-2", "1.5"} {
		_, err := s.roll(count)
		s.ErrorIs(err, ErrInvalidDiceCount, count)
	}
	s.Equal(500, s.room().Coins)
}

func (s *SessionServiceTestSuite) TestRollDiceNotEnoughCoins() {
	s.setCoins(120)

	_, err := s.roll("3")
	var coins *InsufficientCoinsError
	s.Require().True(errors.As(err, &coins))
	s.Equal(2, coins.MaxDice)
	s.Contains(err.Error(), "The maximum dices you can roll is 2")

	_, err = s.roll("9223372036854775807")
	s.Require().True(errors.As(err, &coins))
	s.Equal(120, s.room().Coins)
}

func (s *SessionServiceTestSuite) TestRollDiceBlockedByTaskAndCurse() {
	s.setCoins(500)

	_, err := s.task("Alice", "photos1", models.TaskStateRequested)
	s.Require().NoError(err)
	_, err = s.roll("1")
	s.ErrorIs(err, ErrTaskBlocksCurse)

	_, err = s.task("Alice", "photos1", models.TaskStateConfirmed)
	s.Require().NoError(err)

	s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(5)
	_, err = s.roll("1")
	s.Require().NoError(err)

	_, err = s.roll("1")
	s.ErrorIs(err, ErrCurseInFlight)
}

func (s *SessionServiceTestSuite) TestRollDiceDrawsCurse() {
	s.setCoins(200)
	gomock.InOrder(
		s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(3),
		s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(6),
	)

	out, err := s.roll("2")
	s.Require().NoError(err)
	s.Equal([]protocol.EventName{protocol.EvCurse, protocol.EvCoins}, names(out.Deliveries))

	curse := find[*protocol.CurseEvent](out.Deliveries)[0]
	s.Equal([]int{3, 6}, curse.Curse.Dices)
	s.Equal(9, curse.Curse.Curse)
	s.Equal(models.TaskStateRequested, curse.Curse.State)
	s.Equal(100, find[*protocol.CoinsEvent](out.Deliveries)[0].Coins)

	room := s.room()
	s.Equal(100, room.Coins)
	s.Require().NotNil(room.PendingCurse)
	s.Len(room.CurseHistory(), 1)
}

func (s *SessionServiceTestSuite) TestRollDiceClampsToTopCurse() {
	s.setCoins(250)
	s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(5).Times(5)

	out, err := s.roll("5")
	s.Require().NoError(err)

	curse := find[*protocol.CurseEvent](out.Deliveries)[0]
	s.Equal(24, curse.Curse.Curse)
	s.Equal([]int{5, 5, 5, 5, 5}, curse.Curse.Dices)
	s.Zero(s.room().Coins)
}

func (s *SessionServiceTestSuite) TestUpdateCurseLifecycle() {
	s.setCoins(50)
	s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(1)
	_, err := s.roll("1")
	s.Require().NoError(err)

	update := func(state models.TaskState) (*Output, error) {
		return s.service.UpdateCurse(s.ctx, &UpdateCurseInput{
			RoomID: s.roomID,
			Curse:  &models.Curse{Dices: []int{1}, Curse: 1, State: state},
		})
	}

	out, err := update(models.TaskStateCompleted)
	s.Require().NoError(err)
	s.Equal([]protocol.EventName{protocol.EvCurse}, names(out.Deliveries))
	s.Len(s.room().CurseHistory(), 1)

	_, err = update(models.TaskStateConfirmed)
	s.Require().NoError(err)

	room := s.room()
	s.Nil(room.PendingCurse)
	s.Require().Len(room.Curses, 1)
	s.Equal(models.TaskStateConfirmed, room.Curses[0].State)

	_, err = update(models.TaskStateCompleted)
	s.ErrorIs(err, ErrNoPendingCurse)

	_, err = update(models.TaskStateRequested)
	s.Require().NoError(err)
	_, err = update(models.TaskStateRequested)
	s.ErrorIs(err, ErrCurseInFlight)
}

// the walkthrough from the game's design notes

func (s *SessionServiceTestSuite) TestScenario() {
	id := 0
	_, err := fmt.Sscanf(s.roomID, "%d", &id)
	s.Require().NoError(err)
	s.GreaterOrEqual(id, 100)
	s.LessOrEqual(id, 998)

	s.join("Alice", true)
	out := s.join("Bob", false)
	s.Equal(protocol.EvJoin, out.Deliveries[0].Event.Name())
	players := find[*protocol.PlayersEvent](out.Deliveries)[0].Players
	s.Require().Len(players, 2)
	s.Equal(models.RoleAdmin, players[0].Role)
	s.Equal(models.RoleNone, players[1].Role)

	_, err = s.roll("3")
	var coins *InsufficientCoinsError
	s.Require().True(errors.As(err, &coins))
	s.Equal(0, coins.MaxDice)

	s.setCoins(200)
	s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(2).Times(2)
	_, err = s.roll("2")
	s.Require().NoError(err)
	s.Equal(100, s.room().Coins)
	s.Require().Len(s.room().CurseHistory(), 1)
	s.Equal(models.TaskStateRequested, s.room().PendingCurse.State)

	// the curse has to settle before a task can be requested
	_, err = s.service.UpdateCurse(s.ctx, &UpdateCurseInput{
		RoomID: s.roomID,
		Curse:  &models.Curse{Dices: []int{2, 2}, Curse: 4, State: models.TaskStateConfirmed},
	})
	s.Require().NoError(err)

	_, err = s.service.JoinRoom(s.ctx, &JoinRoomInput{RoomID: s.roomID, PlayerName: "Carol", Password: "r"})
	s.Require().NoError(err)
	s.setRole("Bob", models.RoleSeeker)
	s.setRole("Carol", models.RoleHider)
	s.place("Carol", 0, 0)
	s.place("Bob", 3/metersPerDegree, 0)

	taskOut, err := s.task("Bob", "radar5", models.TaskStateRequested)
	s.Require().NoError(err)
	task := find[*protocol.TaskEvent](taskOut.Deliveries)[0]
	s.Equal(models.TaskStateConfirmed, task.Task.State)
	s.Contains(task.Task.Result, "1 hiders")
	s.Equal(130, s.room().Coins)
}

func TestNewValidatesConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := roomRepo.NewMemory(nil)
	roller := diceMocks.NewMockRoller(ctrl)
	clk := clockMocks.NewMockClock(ctrl)
	ids := uuidMocks.NewMockUUID(ctrl)

	cases := map[SessionError]*Config{
		ErrNilConfig:        nil,
		ErrNilRoomRepo:      {DiceRoller: roller, Clock: clk, UUIDGenerator: ids},
		ErrNilDiceRoller:    {RoomRepo: repo, Clock: clk, UUIDGenerator: ids},
		ErrNilClock:         {RoomRepo: repo, DiceRoller: roller, UUIDGenerator: ids},
		ErrNilUUIDGenerator: {RoomRepo: repo, DiceRoller: roller, Clock: clk},
	}
	for want, cfg := range cases {
		_, err := New(cfg)
		if !errors.Is(err, want) {
			t.Errorf("New(%v) = %v, want %v", cfg, err, want)
		}
	}
}
