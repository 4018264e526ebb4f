package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/talent-match/internal/config"
	"github.com/marcus/talent-match/internal/secrets"
	"github.com/marcus/talent-match/internal/types"
)

const testEncryptionKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func newTestUserService(t *testing.T, st *fakeStore) *UserService {
	t.Helper()
	cipher, err := secrets.NewCipher(testEncryptionKey)
	require.NoError(t, err)
	// Minimum cost keeps the hashing in tests fast.
	svc := NewUserService(st, &config.PasswordConfig{BcryptCost: 10}, cipher)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func validRegistration() *types.RegisterRequest {
	return &types.RegisterRequest{
		Username: "jane_doe",
		Email:    "jane@example.com",
		Password: "s3cretpass",
	}
}

func TestUserService_Register(t *testing.T) {
	st := newFakeStore()
	svc := newTestUserService(t, st)

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Regexp(t, `^USR_\d{14}_[0-9a-f]{8}$`, user.UserID)
	assert.Equal(t, "jane_doe", user.Username)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.Equal(t, "2025-06-15T10:30:00Z", user.CreatedAt)

	// The stored record must not contain the plaintext email or password.
	require.Len(t, st.users, 1)
	stored := st.users[0]
	assert.NotEqual(t, "jane@example.com", stored.EmailEncrypted)
	assert.NotEqual(t, "s3cretpass", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	svc := newTestUserService(t, newFakeStore())

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	dup := validRegistration()
	dup.Email = "other@example.com"
	_, err = svc.Register(context.Background(), dup)
	require.Error(t, err)
	assert.IsType(t, &ErrUsernameExists{}, err)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestUserService(t, newFakeStore())

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	dup := validRegistration()
	dup.Username = "other_user"
	_, err = svc.Register(context.Background(), dup)
	require.Error(t, err)
	assert.IsType(t, &ErrEmailAlreadyExists{}, err)
	// The email must not leak through the error message.
	assert.NotContains(t, err.Error(), "jane@example.com")
}

func TestUserService_Register_Invalid(t *testing.T) {
	svc := newTestUserService(t, newFakeStore())

	req := validRegistration()
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.IsType(t, &ErrValidation{}, err)
}

func TestUserService_Login(t *testing.T) {
	svc := newTestUserService(t, newFakeStore())

	registered, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), &types.LoginRequest{
		Username: "jane_doe",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, user.UserID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "2025-06-15T10:30:00Z", user.LastLogin)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc := newTestUserService(t, newFakeStore())

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Username: "jane_doe",
		Password: "wrongpassword",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUserService_Login_UnknownUsername(t *testing.T) {
	svc := newTestUserService(t, newFakeStore())

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Username: "nobody",
		Password: "s3cretpass",
	})
	require.Error(t, err)
	// Same error as a wrong password so the response does not reveal
	// whether the username exists.
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUserService_Login_InactiveAccount(t *testing.T) {
	st := newFakeStore()
	svc := newTestUserService(t, st)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	st.users[0].IsActive = false

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Username: "jane_doe",
		Password: "s3cretpass",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	svc := newTestUserService(t, newFakeStore())

	_, err := svc.GetUser(context.Background(), "USR_missing")
	require.Error(t, err)
	assert.IsType(t, &ErrUserNotFound{}, err)
}

func TestUserService_LinkProfile(t *testing.T) {
	st := newFakeStore()
	svc := newTestUserService(t, st)

	registered, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	err = svc.LinkProfile(context.Background(), &types.LinkProfileRequest{
		UserID:      registered.UserID,
		CandidateID: "CAN_20250615103000",
	})
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), registered.UserID)
	require.NoError(t, err)
	assert.Equal(t, "CAN_20250615103000", user.CandidateProfileID)
}

func TestUserService_LinkProfile_UnknownUser(t *testing.T) {
	svc := newTestUserService(t, newFakeStore())

	err := svc.LinkProfile(context.Background(), &types.LinkProfileRequest{
		UserID:      "USR_missing",
		CandidateID: "CAN_1",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrUserNotFound{}, err)
}
