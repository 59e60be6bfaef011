//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/domain/user"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/password"
	"slotbook/internal/testsupport/testutil"
	"slotbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	w   *world
	ctx context.Context
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.w = newWorld()
	s.ctx = context.Background()
}

func (s *AuthCommandsTestSuite) TestRegister() {
	s.Run("issues a token for the new owner", func() {
		res := s.w.register(s.T(), "Owner@Example.com")

		s.Equal("owner@example.com", res.Account.Email)
		s.Equal(user.RoleBusinessOwner.String(), res.Account.Role)
		s.Equal(user.DefaultSettings(), res.Account.Settings)
		s.Equal(s.w.clock.Now().Add(168*time.Hour), res.ExpiresAt)

		principal, err := s.w.validator.ValidateToken(s.ctx, res.Token)
		s.Require().NoError(err)
		s.Equal(res.Account.ID, principal.UserID)
	})

	s.Run("email is taken regardless of case", func() {
		_, err := s.w.auth.Register(s.ctx, commands.RegisterInput{
			Email: "OWNER@example.com", Password: "password123", BusinessName: "Other", OwnerName: "Jo", Phone: "+15550100201",
		})
		s.True(errs.Is(err, errs.ErrDuplicateAccount))
	})

	s.Run("weak password", func() {
		_, err := s.w.auth.Register(s.ctx, commands.RegisterInput{
			Email: "new@example.com", Password: "short", BusinessName: "Other", OwnerName: "Jo", Phone: "+15550100201",
		})
		s.True(errs.Is(err, errs.ErrValidation))
		s.Equal("password", errs.Fields(err)[0].Field)
	})
}

func (s *AuthCommandsTestSuite) TestLogin() {
	registered := s.w.register(s.T(), "owner@example.com")

	s.Run("records the login time", func() {
		s.w.clock.Add(time.Hour)
		res, err := s.w.auth.Login(s.ctx, " owner@example.com ", "password123")
		s.Require().NoError(err)
		s.Require().NotNil(res.Account.LastLoginAt)
		s.Equal(s.w.clock.Now(), *res.Account.LastLoginAt)
	})

	cases := []struct {
		name, email, password string
	}{
		{"wrong password", "owner@example.com", "password124"},
		{"unknown email", "nobody@example.com", "password123"},
		{"malformed email", "nobody", "password123"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.w.auth.Login(s.ctx, tc.email, tc.password)
			s.True(errs.Is(err, errs.ErrInvalidCredentials), "got %v", err)
		})
	}

	s.Run("deactivated account cannot log in", func() {
		s.Require().NoError(s.w.auth.DeactivateAccount(s.ctx, registered.Account.ID))
		_, err := s.w.auth.Login(s.ctx, "owner@example.com", "password123")
		s.True(errs.Is(err, errs.ErrInvalidCredentials))
	})

	s.Run("email is free again after deactivation", func() {
		res := s.w.register(s.T(), "owner@example.com")
		s.NotEqual(registered.Account.ID, res.Account.ID)
	})
}

// pausingHasher blocks after a successful Compare until release is closed.
type pausingHasher struct {
	password.Hasher
	compared chan struct{}
	release  chan struct{}
}

func newPausingHasher() *pausingHasher {
	return &pausingHasher{
		Hasher:   password.NewBcryptHasherWithCost(bcrypt.MinCost),
		compared: make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (h *pausingHasher) Compare(hashed, plain string) error {
	if err := h.Hasher.Compare(hashed, plain); err != nil {
		return err
	}
	close(h.compared)
	<-h.release
	return nil
}

// loginInterleaved starts a login with the original password, runs concurrent while that login
// sits between the hash check and the last-login write, then returns the login's result.
func (s *AuthCommandsTestSuite) loginInterleaved(concurrent func()) error {
	hasher := newPausingHasher()
	slowAuth := commands.NewAuthCommands(s.w.uow, hasher, s.w.jwt, s.w.revocations, s.w.clock)

	done := make(chan error, 1)
	go func() {
		_, err := slowAuth.Login(s.ctx, "owner@example.com", "password123")
		done <- err
	}()

	<-hasher.compared
	concurrent()
	close(hasher.release)
	return <-done
}

func (s *AuthCommandsTestSuite) TestLoginRacingAccountChanges() {
	s.Run("password changed mid login", func() {
		s.SetupTest()
		id := s.w.register(s.T(), "owner@example.com").Account.ID

		err := s.loginInterleaved(func() {
			s.Require().NoError(s.w.auth.ChangePassword(s.ctx, id, "password123", "BrandNew456!"))
		})
		s.True(errs.Is(err, errs.ErrInvalidCredentials), "got %v", err)

		_, err = s.w.auth.Login(s.ctx, "owner@example.com", "password123")
		s.True(errs.Is(err, errs.ErrInvalidCredentials), "the old password stays revoked")
		_, err = s.w.auth.Login(s.ctx, "owner@example.com", "BrandNew456!")
		s.NoError(err)
	})

	s.Run("account deactivated mid login", func() {
		s.SetupTest()
		id := s.w.register(s.T(), "owner@example.com").Account.ID

		err := s.loginInterleaved(func() {
			s.Require().NoError(s.w.auth.DeactivateAccount(s.ctx, id))
		})
		s.True(errs.Is(err, errs.ErrInvalidCredentials), "got %v", err)

		_, err = s.w.auth.UpdateProfile(s.ctx, id, user.ProfilePatch{OwnerName: testutil.Ptr("Jo")})
		s.True(errs.Is(err, errs.ErrNotFound), "the account stays deactivated")
	})

	s.Run("profile edit mid login survives", func() {
		s.SetupTest()
		id := s.w.register(s.T(), "owner@example.com").Account.ID

		err := s.loginInterleaved(func() {
			_, err := s.w.auth.UpdateProfile(s.ctx, id, user.ProfilePatch{BusinessName: testutil.Ptr("Renamed Studio")})
			s.Require().NoError(err)
		})
		s.Require().NoError(err)

		res, err := s.w.auth.Login(s.ctx, "owner@example.com", "password123")
		s.Require().NoError(err)
		s.Equal("Renamed Studio", res.Account.BusinessName)
	})
}

func (s *AuthCommandsTestSuite) TestChangePassword() {
	res := s.w.register(s.T(), "owner@example.com")
	id := res.Account.ID

	err := s.w.auth.ChangePassword(s.ctx, id, "wrong-current", "newpassword1")
	s.True(errs.Is(err, errs.ErrIncorrectPassword))

	err = s.w.auth.ChangePassword(s.ctx, id, "password123", "short")
	s.True(errs.Is(err, errs.ErrValidation))
	s.Equal("new_password", errs.Fields(err)[0].Field)

	s.Require().NoError(s.w.auth.ChangePassword(s.ctx, id, "password123", "newpassword1"))

	_, err = s.w.auth.Login(s.ctx, "owner@example.com", "password123")
	s.True(errs.Is(err, errs.ErrInvalidCredentials))
	_, err = s.w.auth.Login(s.ctx, "owner@example.com", "newpassword1")
	s.NoError(err)
}

func (s *AuthCommandsTestSuite) TestUpdateProfileAndSettings() {
	res := s.w.register(s.T(), "owner@example.com")

	view, err := s.w.auth.UpdateProfile(s.ctx, res.Account.ID, user.ProfilePatch{
		BusinessName: testutil.Ptr("Glow & Co"),
		Phone:        testutil.Ptr("+15550109999"),
	})
	s.Require().NoError(err)
	s.Equal("Glow & Co", view.BusinessName)
	s.Equal("+15550109999", view.Phone)
	s.Equal(res.Account.OwnerName, view.OwnerName)

	view, err = s.w.auth.UpdateSettings(s.ctx, res.Account.ID, user.SettingsPatch{
		NotificationSettings: &user.NotificationSettings{EmailNotifications: false, ReminderTime: 120},
	})
	s.Require().NoError(err)
	s.False(view.Settings.NotificationSettings.EmailNotifications)
	s.Equal(user.DefaultSettings().Branding, view.Settings.Branding)

	_, err = s.w.auth.UpdateSettings(s.ctx, res.Account.ID, user.SettingsPatch{
		Branding: &user.Branding{PrimaryColor: "blue", SecondaryColor: "#1E40AF"},
	})
	s.True(errs.Is(err, errs.ErrValidation))
}

func (s *AuthCommandsTestSuite) TestLogout() {
	res := s.w.register(s.T(), "owner@example.com")
	principal, err := s.w.validator.ValidateToken(s.ctx, res.Token)
	s.Require().NoError(err)

	s.Require().NoError(s.w.auth.Logout(s.ctx, principal))

	_, err = s.w.validator.ValidateToken(s.ctx, res.Token)
	s.True(errs.Is(err, errs.ErrInvalidToken))

	s.Run("expired principal is a no-op", func() {
		principal.ExpiresAt = s.w.clock.Now().Add(-time.Minute)
		principal.TokenID = "already-expired"
		s.NoError(s.w.auth.Logout(s.ctx, principal))
		revoked, err := s.w.revocations.IsRevoked(s.ctx, "already-expired")
		s.Require().NoError(err)
		s.False(revoked)
	})
}

func (s *AuthCommandsTestSuite) TestUnknownUser() {
	_, err := s.w.auth.UpdateProfile(s.ctx, uuid.New(), user.ProfilePatch{OwnerName: testutil.Ptr("Jo")})
	s.True(errs.Is(err, errs.ErrNotFound))

	err = s.w.auth.DeactivateAccount(s.ctx, uuid.New())
	s.True(errs.Is(err, errs.ErrNotFound))
}

func TestAuthCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}
