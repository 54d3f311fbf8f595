package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestService_RegisterAndLogin(t *testing.T) {
	svc := newTestService()

	view, err := svc.Register(context.Background(), RegisterRequest{
		Name:        "Asha",
		Email:       "User@Example.com",
		Password:    "secret1",
		Gender:      "Female",
		DateOfBirth: "1995-03-10",
	})
	require.NoError(t, err)
	require.Equal(t, "user@example.com", view.Email)
	require.Equal(t, "Asha", view.Name)
	require.Equal(t, "female", view.Gender)
	require.Equal(t, "1995-03-10", view.DateOfBirth)
	require.NotZero(t, view.ID)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, view.Email, resp.User.Email)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, view.ID, claims.UserID)
	require.Equal(t, view.Email, claims.Email)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	profile, err := svc.Profile(context.Background(), claims.UserID)
	require.NoError(t, err)
	require.Equal(t, view.Name, profile.Name)
}

func TestService_RegisterValidation(t *testing.T) {
	svc := newTestService()

	cases := []RegisterRequest{
		{Name: "Asha", Email: "not-an-email", Password: "secret1"},
		{Name: "", Email: "a@example.com", Password: "secret1"},
		{Name: "Asha", Email: "a@example.com", Password: "short"},
		{Name: "Asha", Email: "a@example.com", Password: "secret1", Gender: "robot"},
		{Name: "Asha", Email: "a@example.com", Password: "secret1", DateOfBirth: "10-03-1995"},
	}
	for i, req := range cases {
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err, "case %d", i)
	}
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "One", Email: "user@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name: "Two", Email: "user@example.com", Password: "secret12",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Asha", Email: "user@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "wrong-pass"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid email or password")

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid email or password")
}

func TestService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken(context.Background(), "")
	require.Error(t, err)

	_, err = svc.ValidateToken(context.Background(), "not.a.token")
	require.Error(t, err)
}

func newTestService() Service {
	return NewService(Config{
		Secret:   "test-secret",
		TokenTTL: time.Hour,
	}, newMemoryRepo(), newTestLogger())
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type memoryRepo struct {
	mu      sync.Mutex
	seq     int64
	byID    map[int64]User
	byEmail map[string]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[int64]User), byEmail: make(map[string]int64)}
}

func (r *memoryRepo) Create(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return User{}, ErrEmailExists
	}
	r.seq++
	user.ID = r.seq
	user.CreatedAt = time.Now().UTC()
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	return user, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	return user, ok, nil
}
