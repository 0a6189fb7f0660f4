package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swiftride/api/internal/application"
	"github.com/swiftride/api/internal/domain/entity"
	"github.com/swiftride/api/pkg/helpers"
)

func newUserService(users *memUserRepo) *application.UserService {
	return application.NewUserService(users, helpers.NewJWTManager("test-secret", time.Hour), nil)
}

func TestRegister(t *testing.T) {
	users := newMemUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, application.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Role:     entity.RolePassenger,
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "secret1", u.Password, "password must be stored hashed")

	claims, err := svc.JWT.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, string(entity.RolePassenger), claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService(newMemUserRepo())
	ctx := context.Background()

	in := application.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Role:     entity.RolePassenger,
	}
	_, _, err := svc.Register(ctx, in)
	require.NoError(t, err)

	in.Name = "Other Alice"
	_, _, err = svc.Register(ctx, in)
	require.ErrorIs(t, err, application.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newUserService(newMemUserRepo())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, application.RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret1",
		Role:     entity.RoleDriver,
	})
	require.NoError(t, err)

	u, token, err := svc.Login(ctx, "bob@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, entity.RoleDriver, u.Role)

	// unknown email and wrong password are indistinguishable
	_, _, err = svc.Login(ctx, "bob@example.com", "wrong")
	require.ErrorIs(t, err, application.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, application.ErrInvalidCredentials)
}

func TestGetProfile(t *testing.T) {
	svc := newUserService(newMemUserRepo())
	ctx := context.Background()

	u, _, err := svc.Register(ctx, application.RegisterInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "secret1",
		Role:     entity.RolePassenger,
	})
	require.NoError(t, err)

	got, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "carol@example.com", got.Email)

	_, err = svc.GetProfile(ctx, "missing")
	require.ErrorIs(t, err, application.ErrUserNotFound)
}
