package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/UzayAnil/swiftcode/internal/dependencies/mocks"
	"github.com/UzayAnil/swiftcode/internal/dependencies/names"
	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, names.New(0), DefaultConfig())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestHashAndVerifyPassword() {
	hash, err := s.service.HashPassword("hunter2")
	s.Require().NoError(err)
	s.NotEqual("hunter2", hash)

	s.True(s.service.VerifyPassword("hunter2", hash))
	s.False(s.service.VerifyPassword("wrong", hash))
}

func (s *ServiceSuite) TestCreateAnonymousPlayer() {
	session, player, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	s.True(player.IsAnonymous)
	s.True(player.IsAllowedIngame)
	s.Equal("Guest1", player.Username)
	s.NotEmpty(player.ID)
	s.Equal(player.ID, session.PlayerID)
	s.NotEmpty(session.Token)

	stored, err := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.True(stored.IsAnonymous)
}

func (s *ServiceSuite) TestAnonymousNamesAreSequential() {
	_, first, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)
	_, second, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	s.Equal("Guest1", first.Username)
	s.Equal("Guest2", second.Username)
}

func (s *ServiceSuite) TestRegisterAndLogin() {
	_, registered, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)
	s.False(registered.IsAnonymous)
	s.NotEmpty(registered.PasswordHash)

	session, player, err := s.service.Login(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)
	s.Equal(registered.ID, player.ID)
	s.Equal(player.ID, session.PlayerID)
}

func (s *ServiceSuite) TestRegisterDuplicateUsernameFails() {
	_, _, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	_, _, err = s.service.Register(s.ctx, "alice", "other")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestLoginWrongPasswordFails() {
	_, _, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	_, _, err = s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUserFails() {
	_, _, err := s.service.Login(s.ctx, "nobody", "pass")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginAsAnonymousPlayerFails() {
	_, player, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	_, _, err = s.service.Login(s.ctx, player.Username, "")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestValidateSession() {
	session, _, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, validated.PlayerID)
}

func (s *ServiceSuite) TestValidateUnknownTokenFails() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpires() {
	session, _, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	s.clock.Advance(DefaultConfig().SessionDuration + time.Second)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, _, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestGetPlayerRefetchesFromStorage() {
	session, player, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	// Mutate the stored record after login
	stored, err := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	stored.TotalGames = 3
	s.Require().NoError(s.storage.SavePlayer(s.ctx, stored))

	fetched, err := s.service.GetPlayer(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(3, fetched.TotalGames)
}

func (s *ServiceSuite) TestSetPendingAction() {
	_, player, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	err = s.service.SetPendingAction(s.ctx, player.ID, model.PendingAction{
		Kind:   model.PendingJoin,
		GameID: "ABC234",
	})
	s.Require().NoError(err)

	stored, err := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.PendingAction)
	s.Equal(model.PendingJoin, stored.PendingAction.Kind)
	s.Equal(model.GameID("ABC234"), stored.PendingAction.GameID)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	expired, _, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	s.clock.Advance(DefaultConfig().SessionDuration + time.Second)
	fresh, _, err := s.service.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(expired.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
