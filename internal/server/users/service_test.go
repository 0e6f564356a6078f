package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/steptrack/internal/common"
	sauth "github.com/dmitrijs2005/steptrack/internal/server/auth"
	"github.com/dmitrijs2005/steptrack/internal/server/config"
)

func newTestService(t *testing.T) (*Service, *InMemoryRepository) {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Hour,
	}
	repo := NewInMemoryRepository()
	return NewService(repo, cfg), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, "A", "a@x.com", "p")
	require.NoError(t, err)
	require.NotNil(t, res.User)

	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.User.ID)
	assert.Equal(t, "A", res.User.Name)
	assert.Equal(t, "a@x.com", res.User.Email)

	// the stored secret is a hash of the password, not the password
	assert.NoError(t, bcrypt.CompareHashAndPassword(res.User.PasswordHash, []byte("p")))

	userID, err := sauth.GetUserIDFromToken(res.Token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "a@x.com", "p")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "B", "a@x.com", "q")
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Equal(t, 1, repo.Len(), "failed registration must not alter the directory")
}

func TestService_Register_EmptyFields(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@x.com", "p")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Register(ctx, "A", "", "p")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Register(ctx, "A", "a@x.com", "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	assert.Equal(t, 0, repo.Len())
}

func TestService_Login(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "A", "a@x.com", "p")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)
}

func TestService_Login_TokensUniquePerIssuance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "a@x.com", "p")
	require.NoError(t, err)

	r1, err := svc.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	r2, err := svc.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)

	assert.NotEqual(t, r1.Token, r2.Token)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "a@x.com", "p")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Nil(t, res, "no session may be issued on failure")
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Login(context.Background(), "nobody@x.com", "p")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Nil(t, res)
}
