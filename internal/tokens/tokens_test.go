package tokens

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/agrilearn-network/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testManager(clock *fakeClock) *Manager {
	cfg := Config{
		AccessSecret:  "unit-access-secret",
		RefreshSecret: "unit-refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    30 * 24 * time.Hour,
	}
	if clock != nil {
		cfg.Now = clock.Now
	}
	return New(cfg)
}

func testClaim() models.Claim {
	return models.Claim{UserID: "u1", Email: "u1@x.com"}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	m := testManager(nil)
	claim := testClaim()

	pair, err := m.Issue(claim)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	got, err := m.Verify(pair.AccessToken, Access)
	require.NoError(t, err)
	require.Equal(t, claim, got)

	got, err = m.Verify(pair.RefreshToken, Refresh)
	require.NoError(t, err)
	require.Equal(t, claim, got)
}

func TestVerify_CrossSecretRejected(t *testing.T) {
	t.Parallel()

	m := testManager(nil)
	pair, err := m.Issue(testClaim())
	require.NoError(t, err)

	_, err = m.Verify(pair.AccessToken, Refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, ErrSignature)

	_, err = m.Verify(pair.RefreshToken, Access)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, ErrSignature)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := New(Config{
		AccessSecret:  "a",
		RefreshSecret: "r",
		AccessTTL:     time.Second,
		RefreshTTL:    time.Minute,
		Now:           clock.Now,
	})

	pair, err := m.Issue(testClaim())
	require.NoError(t, err)
	require.Equal(t, clock.Now().Add(time.Second), pair.AccessExpiresAt)

	clock.Advance(999 * time.Millisecond)
	_, err = m.Verify(pair.AccessToken, Access)
	require.NoError(t, err)

	// Ровно в момент exp токен уже просрочен.
	clock.Advance(time.Millisecond)
	_, err = m.Verify(pair.AccessToken, Access)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, ErrExpired)

	clock.Advance(time.Second)
	_, err = m.Verify(pair.AccessToken, Access)
	require.ErrorIs(t, err, ErrExpired)

	_, err = m.Verify(pair.RefreshToken, Refresh)
	require.NoError(t, err)
}

func TestIssue_InvalidClaim(t *testing.T) {
	t.Parallel()

	m := testManager(nil)

	tests := []struct {
		name  string
		claim models.Claim
	}{
		{"empty user id", models.Claim{Email: "a@b.c"}},
		{"empty email", models.Claim{UserID: "u1"}},
		{"empty both", models.Claim{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Issue(tt.claim)
			require.ErrorIs(t, err, ErrInvalidClaim)
		})
	}
}

func TestIssue_DistinctPairsSameSecond(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := testManager(clock)

	p1, err := m.Issue(testClaim())
	require.NoError(t, err)
	p2, err := m.Issue(testClaim())
	require.NoError(t, err)

	require.NotEqual(t, p1.AccessToken, p2.AccessToken)
	require.NotEqual(t, p1.RefreshToken, p2.RefreshToken)
}

func TestVerify_RejectsForeignTokens(t *testing.T) {
	t.Parallel()

	m := testManager(nil)
	secret := []byte("unit-access-secret")
	now := time.Now().UTC()

	sign := func(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(secret)
		require.NoError(t, err)
		return s
	}

	t.Run("wrong alg", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS512, jwt.MapClaims{
			"userId": "u1", "email": "u1@x.com",
			"exp": now.Add(time.Hour).Unix(), "iat": now.Unix(),
		})
		_, err := m.Verify(tok, Access)
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, ErrMalformed)
		require.False(t, errors.Is(err, ErrSignature))
	})

	t.Run("alg none", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"userId": "u1", "email": "u1@x.com",
			"exp": now.Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Verify(tok, Access)
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, ErrMalformed)
		require.False(t, errors.Is(err, ErrSignature))
	})

	t.Run("no exp", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, jwt.MapClaims{
			"userId": "u1", "email": "u1@x.com", "iat": now.Unix(),
		})
		_, err := m.Verify(tok, Access)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing email", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, jwt.MapClaims{
			"userId": "u1", "exp": now.Add(time.Hour).Unix(),
		})
		_, err := m.Verify(tok, Access)
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("garbage", func(t *testing.T) {
		for _, tok := range []string{"", "abc", "a.b.c"} {
			_, err := m.Verify(tok, Access)
			require.ErrorIs(t, err, ErrInvalidToken)
			require.False(t, errors.Is(err, ErrExpired))
		}
	})
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	m := New(Config{})
	require.True(t, m.UsesFallbackSecrets())
	require.Equal(t, DefaultAccessTTL, m.TTL(Access))
	require.Equal(t, DefaultRefreshTTL, m.TTL(Refresh))

	require.False(t, testManager(nil).UsesFallbackSecrets())
}
