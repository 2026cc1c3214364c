package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newMemoryStore(t *testing.T, ttl time.Duration) (*MemoryStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = clock.Now
	return s, clock
}

func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

// Both backends must satisfy the same contract.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "visitor", TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "visitor", TokenKey, "abc123"))
	require.NoError(t, s.Set(ctx, "visitor", UserKey, `{"name":"Jo"}`))

	got, ok, err := s.Get(ctx, "visitor", TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc123", got)

	_, ok, err = s.Get(ctx, "someone-else", TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, "visitor", TokenKey))
	_, ok, err = s.Get(ctx, "visitor", TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err = s.Get(ctx, "visitor", UserKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Jo"}`, got)

	assert.ErrorIs(t, s.Set(ctx, "", TokenKey, "x"), ErrEmptyID)
	_, _, err = s.Get(ctx, "", TokenKey)
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.ErrorIs(t, s.Delete(ctx, "", TokenKey), ErrEmptyID)

	assert.NoError(t, s.Ping(ctx))
}

func TestMemoryStoreContract(t *testing.T) {
	s, _ := newMemoryStore(t, time.Hour)
	storeContract(t, s)
}

func TestRedisStoreContract(t *testing.T) {
	s, _ := setupRedisStore(t, time.Hour)
	storeContract(t, s)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, clock := newMemoryStore(t, 10*time.Minute)

	require.NoError(t, s.Set(ctx, "v1", TokenKey, "t1"))
	require.NoError(t, s.Set(ctx, "v2", TokenKey, "t2"))

	clock.now = clock.now.Add(8 * time.Minute)
	_, ok, err := s.Get(ctx, "v1", TokenKey)
	require.NoError(t, err)
	assert.True(t, ok, "access slides the expiry")

	clock.now = clock.now.Add(8 * time.Minute)
	_, ok, err = s.Get(ctx, "v2", TokenKey)
	require.NoError(t, err)
	assert.False(t, ok, "v2 was idle for 16 minutes")

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Sweep(clock.now))

	clock.now = clock.now.Add(11 * time.Minute)
	assert.Equal(t, 1, s.Sweep(clock.now))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreDeleteLastKeyDropsRecord(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemoryStore(t, time.Hour)

	require.NoError(t, s.Set(ctx, "v", TokenKey, "t"))
	require.NoError(t, s.Delete(ctx, "v", TokenKey, UserKey))
	assert.Equal(t, 0, s.Len())
	require.NoError(t, s.Delete(ctx, "missing", TokenKey))
}

func TestRedisStoreHashesVisitorID(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedisStore(t, 30*time.Minute)

	require.NoError(t, s.Set(ctx, "2C8mVw9ZbVxLq0s7wQf6Vn0dXc1", TokenKey, "tok"))

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "storefront:session:"))
	assert.NotContains(t, keys[0], "2C8mVw9ZbVxLq0s7wQf6Vn0dXc1")
	assert.Equal(t, 30*time.Minute, mr.TTL(keys[0]))

	mr.FastForward(31 * time.Minute)
	_, ok, err := s.Get(ctx, "2C8mVw9ZbVxLq0s7wQf6Vn0dXc1", TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreReportsOutage(t *testing.T) {
	s, mr := setupRedisStore(t, time.Minute)
	mr.Close()

	_, _, err := s.Get(context.Background(), "v", TokenKey)
	require.Error(t, err)
	assert.Error(t, s.Ping(context.Background()))
}

func TestVaultRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemoryStore(t, time.Hour)
	v := NewVault(s, NewID())

	token, err := v.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, v.SaveToken(ctx, "abc123"))
	require.NoError(t, v.SaveUser(ctx, map[string]string{"token": "abc123", "name": "Jo"}))

	token, err = v.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	var user map[string]string
	ok, err := v.User(ctx, &user)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"token": "abc123", "name": "Jo"}, user)

	require.NoError(t, v.RemoveToken(ctx))
	require.NoError(t, v.RemoveUser(ctx))

	ok, err = v.User(ctx, &user)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVaultRotateMovesRecord(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemoryStore(t, time.Hour)
	old := NewID()
	v := NewVault(s, old)
	require.NoError(t, v.SaveToken(ctx, "abc123"))
	require.NoError(t, v.SaveUser(ctx, map[string]string{"name": "Jo"}))

	require.NoError(t, v.Rotate(ctx))
	assert.NotEqual(t, old, v.ID())
	assert.True(t, ValidID(v.ID()))

	token, err := v.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	var user map[string]string
	ok, err := v.User(ctx, &user)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, key := range []string{TokenKey, UserKey} {
		_, ok, err := s.Get(ctx, old, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}

	// Rotating an empty record just changes the id.
	empty := NewVault(s, NewID())
	before := empty.ID()
	require.NoError(t, empty.Rotate(ctx))
	assert.NotEqual(t, before, empty.ID())
}

func TestCookieReplacesQueuedVisitorCookie(t *testing.T) {
	opts := CookieOptions{Name: "tinytales_sid", TTL: time.Hour}
	rec := httptest.NewRecorder()
	rec.Header().Add("Set-Cookie", "other=1")

	SetCookie(rec, "first", opts)
	SetCookie(rec, "second", opts)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "other", cookies[0].Name)
	assert.Equal(t, "second", cookies[1].Value)

	ClearCookie(rec, opts)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Less(t, cookies[1].MaxAge, 0)
}

func TestVaultCorruptUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemoryStore(t, time.Hour)
	require.NoError(t, s.Set(ctx, "v", UserKey, "{not json"))

	var user map[string]string
	ok, err := NewVault(s, "v").User(ctx, &user)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestCookieHelpers(t *testing.T) {
	id := NewID()
	assert.True(t, ValidID(id))
	assert.False(t, ValidID("not-a-ksuid"))

	opts := CookieOptions{Name: "tinytales_sid", TTL: time.Hour, Secure: true}

	rec := httptest.NewRecorder()
	SetCookie(rec, id, opts)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, id, cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	rec = httptest.NewRecorder()
	ClearCookie(rec, opts)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
