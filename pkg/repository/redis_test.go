package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/example/adoreshop/pkg/config"
	"github.com/example/adoreshop/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T, ttl time.Duration) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	repo := NewRedisRepository(&config.RedisConfig{Addr: mr.Addr()}, ttl)
	t.Cleanup(func() { repo.Close() })
	return repo, mr
}

func TestRedisRepository_SaveAndLoad(t *testing.T) {
	repo, mr := setupRedis(t, 0)
	ctx := context.Background()
	want := session.UserSession{Username: "Sari", Email: "sari@mail.id", PhoneNumber: "0812", IsLoggedIn: true}

	require.NoError(t, repo.SaveSession(ctx, "adoremy_user:c1", want))

	got, err := repo.LoadSession(ctx, "adoremy_user:c1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := mr.Get("adoremy_user:c1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"Sari","email":"sari@mail.id","phoneNumber":"0812","isLoggedIn":true}`, raw)
}

func TestRedisRepository_LoadMissing(t *testing.T) {
	repo, _ := setupRedis(t, 0)

	_, err := repo.LoadSession(context.Background(), "adoremy_user:nobody")

	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisRepository_Delete(t *testing.T) {
	repo, mr := setupRedis(t, 0)
	ctx := context.Background()
	require.NoError(t, repo.SaveSession(ctx, "k", session.UserSession{Username: "a", IsLoggedIn: true}))

	require.NoError(t, repo.DeleteSession(ctx, "k"))

	assert.False(t, mr.Exists("k"))
	require.NoError(t, repo.DeleteSession(ctx, "k"), "deleting a missing key is fine")
}

func TestRedisRepository_TTL(t *testing.T) {
	repo, mr := setupRedis(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, repo.SaveSession(ctx, "k", session.UserSession{Username: "a", IsLoggedIn: true}))

	assert.Equal(t, time.Hour, mr.TTL("k"))

	mr.FastForward(2 * time.Hour)
	_, err := repo.LoadSession(ctx, "k")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisRepository_CorruptRecord(t *testing.T) {
	repo, mr := setupRedis(t, 0)
	require.NoError(t, mr.Set("k", "not json"))

	_, err := repo.LoadSession(context.Background(), "k")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisRepository_WorksWithGate(t *testing.T) {
	repo, mr := setupRedis(t, 0)
	g := session.NewGate(repo, "c9")
	ctx := context.Background()

	_, err := g.Login(ctx, session.Credentials{Name: "Dewi"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("adoremy_user:c9"))

	u, err := g.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dewi", u.Username)
	assert.Equal(t, session.DefaultEmail, u.Email)

	require.NoError(t, g.Logout(ctx))
	u, err = g.CurrentUser(ctx)
	require.NoError(t, err)
	assert.False(t, u.IsLoggedIn)
}
