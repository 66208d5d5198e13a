package tokenmanager

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository/memory"
)

// Clock that moves only when told to
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func Test_TokenManager(t *testing.T) {
	t.Parallel()

	testUser := models.User{
		ID:          "demo-user",
		Username:    "demo",
		Email:       "demo.user@example.com",
		DisplayName: "Demo User",
		Roles:       []string{"employee", "unknown-role", "manager"},
	}

	withManager := func(t *testing.T, fn func(m *TokenManager, repo *memory.RefreshTokenRepo, clock *fakeClock)) {
		clock := &fakeClock{now: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
		repo := memory.NewRefreshTokenRepo()

		m, err := New(Config{
			SecretKey: "test-secret-key",
			Issuer:    "internal-auth",
			Audience:  "internal-services",
			AccessTTL: 900 * time.Second,
			Now:       clock.Now,
		}, repo)
		require.NoError(t, err, "token manager should be created without errors")

		fn(m, repo, clock)
	}

	t.Run("new defaults", func(t *testing.T) {
		m, err := New(Config{SecretKey: "secret", Issuer: "internal-auth"}, nil)
		require.NoError(t, err, "token manager should be created without errors")

		require.Equal(t, []byte("secret"), m.key, "secret key should be set")
		require.Equal(t, defaultAccessTokenTTL, m.accessTTL, "default access token TTL should be set")
		require.Equal(t, 10*defaultAccessTokenTTL, m.refreshTTL, "refresh TTL should be 10 access TTLs")
		require.Equal(t, defaultSigningMethod, m.alg.Alg(), "default signing method should be set")
		require.Empty(t, m.Audience())
	})

	t.Run("new requires secret and issuer", func(t *testing.T) {
		_, err := New(Config{Issuer: "internal-auth"}, nil)
		require.Error(t, err, "empty secret must fail")

		_, err = New(Config{SecretKey: "secret"}, nil)
		require.Error(t, err, "empty issuer must fail")
	})

	t.Run("IssueAccess", func(t *testing.T) {
		t.Run("claims", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, clock *fakeClock) {
				issued, err := m.IssueAccess(testUser, "internal-services")
				require.NoError(t, err)
				require.Equal(t, clock.now.Add(900*time.Second), issued.ExpiresAt)

				claims := &AccessTokenClaims{}
				_, err = jwt.ParseWithClaims(issued.Value, claims, func(token *jwt.Token) (any, error) {
					return []byte("test-secret-key"), nil
				}, jwt.WithTimeFunc(clock.Now))
				require.NoError(t, err)

				assert.Equal(t, "demo-user", claims.Subject)
				assert.Equal(t, "internal-auth", claims.Issuer)
				assert.Equal(t, jwt.ClaimStrings{"internal-services"}, claims.Audience)
				assert.Equal(t, []string{"employee", "manager"}, claims.Roles, "unknown roles must be dropped")
				assert.Equal(t, "demo.user@example.com", claims.Email)
				assert.Equal(t, "Demo User", claims.Name)
				assert.NotEmpty(t, claims.ID, "token has to has jti")
				assert.Equal(t, clock.now, claims.IssuedAt.Time.UTC())
				assert.Equal(t, clock.now.Add(900*time.Second), claims.ExpiresAt.Time.UTC())
			})
		})

		t.Run("no audience", func(t *testing.T) {
			m, err := New(Config{SecretKey: "secret", Issuer: "internal-auth"}, nil)
			require.NoError(t, err)

			issued, err := m.IssueAccess(testUser, "")
			require.NoError(t, err)

			claims, err := m.ParseAccess(issued.Value)
			require.NoError(t, err)
			require.Empty(t, claims.Audience)
		})

		t.Run("no roles", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, _ *fakeClock) {
				issued, err := m.IssueAccess(models.User{ID: "nobody"}, "internal-services")
				require.NoError(t, err)

				claims, err := m.ParseAccess(issued.Value)
				require.NoError(t, err)
				require.NotNil(t, claims.Roles, "roles claim should be present even if empty")
				require.Empty(t, claims.Roles)
			})
		})
	})

	t.Run("ParseAccess", func(t *testing.T) {
		t.Run("valid token", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, _ *fakeClock) {
				issued, err := m.IssueAccess(testUser, "internal-services")
				require.NoError(t, err)

				claims, err := m.ParseAccess(issued.Value)

				require.NoError(t, err, "valid token should be parsed without errors")
				require.Equal(t, "demo-user", claims.Subject)
			})
		})

		t.Run("not a token", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, _ *fakeClock) {
				_, err := m.ParseAccess("invalid token")

				require.ErrorIs(t, err, apperrors.ErrInvalidToken)
			})
		})

		t.Run("expired token", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, clock *fakeClock) {
				issued, err := m.IssueAccess(testUser, "internal-services")
				require.NoError(t, err)

				clock.Advance(901 * time.Second)

				_, err = m.ParseAccess(issued.Value)
				require.ErrorIs(t, err, apperrors.ErrInvalidToken, "token has to become expired")
			})
		})

		t.Run("wrong audience", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, _ *fakeClock) {
				issued, err := m.IssueAccess(testUser, "other-service")
				require.NoError(t, err)

				_, err = m.ParseAccess(issued.Value)
				require.ErrorIs(t, err, apperrors.ErrInvalidToken)
			})
		})

		t.Run("wrong issuer", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, clock *fakeClock) {
				other, err := New(Config{
					SecretKey: "test-secret-key",
					Issuer:    "someone-else",
					Audience:  "internal-services",
					Now:       clock.Now,
				}, nil)
				require.NoError(t, err)
				issued, err := other.IssueAccess(testUser, "internal-services")
				require.NoError(t, err)

				_, err = m.ParseAccess(issued.Value)
				require.ErrorIs(t, err, apperrors.ErrInvalidToken)
			})
		})

		t.Run("wrong signing key", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, clock *fakeClock) {
				other, err := New(Config{
					SecretKey: "another-secret",
					Issuer:    "internal-auth",
					Audience:  "internal-services",
					Now:       clock.Now,
				}, nil)
				require.NoError(t, err)
				issued, err := other.IssueAccess(testUser, "internal-services")
				require.NoError(t, err)

				_, err = m.ParseAccess(issued.Value)
				require.ErrorIs(t, err, apperrors.ErrInvalidToken)
			})
		})

		t.Run("not signed token", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, clock *fakeClock) {
				// Create valid but unsigned token
				token := jwt.NewWithClaims(
					jwt.SigningMethodNone,
					AccessTokenClaims{
						RegisteredClaims: jwt.RegisteredClaims{
							ID:        uuid.NewString(),
							Subject:   "demo-user",
							Issuer:    "internal-auth",
							Audience:  jwt.ClaimStrings{"internal-services"},
							IssuedAt:  jwt.NewNumericDate(clock.now),
							ExpiresAt: jwt.NewNumericDate(clock.now.Add(15 * time.Minute)),
						},
					},
				)
				access, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)

				_, err = m.ParseAccess(access)
				require.ErrorIs(t, err, apperrors.ErrInvalidToken, "Valid token with empty alg must fail")
			})
		})
	})

	t.Run("GeneratePair", func(t *testing.T) {
		t.Run("return token pair", func(t *testing.T) {
			withManager(t, func(m *TokenManager, repo *memory.RefreshTokenRepo, clock *fakeClock) {
				pair, err := m.GeneratePair(t.Context(), testUser, "internal-services")
				require.NoError(t, err)

				assert.NotEmpty(t, pair.Access.Value, "access token should not be empty")
				assert.Equal(t, clock.now.Add(900*time.Second), pair.Access.ExpiresAt)
				assert.True(t, len(pair.Refresh.Value) > len("rt_"), "refresh token should not be empty")
				assert.Equal(t, "rt_", pair.Refresh.Value[:3])
				assert.Equal(t, clock.now.Add(9000*time.Second), pair.Refresh.ExpiresAt)
				assert.Equal(t, 1, repo.Len())
			})
		})

		t.Run("raw token is not stored", func(t *testing.T) {
			withManager(t, func(m *TokenManager, repo *memory.RefreshTokenRepo, _ *fakeClock) {
				pair, err := m.GeneratePair(t.Context(), testUser, "internal-services")
				require.NoError(t, err)

				_, err = repo.Get(t.Context(), pair.Refresh.Value)
				require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)

				stored, err := repo.Get(t.Context(), m.hasher.Hash(pair.Refresh.Value))
				require.NoError(t, err)
				require.Equal(t, "demo-user", stored.UserID)
				require.Equal(t, "internal-services", stored.Audience)
			})
		})

		t.Run("generate different tokens", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, _ *fakeClock) {
				pair1, err := m.GeneratePair(t.Context(), testUser, "internal-services")
				require.NoError(t, err)

				pair2, err := m.GeneratePair(t.Context(), testUser, "internal-services")
				require.NoError(t, err)

				assert.NotEqual(t, pair1.Refresh.Value, pair2.Refresh.Value, "refresh tokens should be different")
				assert.NotEqual(t, pair1.Access.Value, pair2.Access.Value, "access tokens should be different")
			})
		})
	})

	t.Run("UseRefresh", func(t *testing.T) {
		t.Run("use token once", func(t *testing.T) {
			withManager(t, func(m *TokenManager, repo *memory.RefreshTokenRepo, _ *fakeClock) {
				pair, err := m.GeneratePair(t.Context(), testUser, "internal-services")
				require.NoError(t, err)

				token, err := m.UseRefresh(t.Context(), pair.Refresh.Value)
				require.NoError(t, err, "using refresh token should not return an error")

				require.Equal(t, "demo-user", token.UserID)
				require.Equal(t, "internal-services", token.Audience)
				require.Equal(t, pair.Refresh.ExpiresAt, token.ExpiresAt)
				require.Equal(t, 0, repo.Len(), "used token must be deleted")
			})
		})

		t.Run("use token twice", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, _ *fakeClock) {
				pair, err := m.GeneratePair(t.Context(), testUser, "internal-services")
				require.NoError(t, err)

				_, err = m.UseRefresh(t.Context(), pair.Refresh.Value)
				require.NoError(t, err, "using refresh token should not return an error")

				_, err = m.UseRefresh(t.Context(), pair.Refresh.Value)
				require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound, "using the same refresh token again should fail")
			})
		})

		t.Run("use expired token", func(t *testing.T) {
			withManager(t, func(m *TokenManager, repo *memory.RefreshTokenRepo, clock *fakeClock) {
				pair, err := m.GeneratePair(t.Context(), testUser, "internal-services")
				require.NoError(t, err)

				clock.Advance(9001 * time.Second)

				_, err = m.UseRefresh(t.Context(), pair.Refresh.Value)
				require.ErrorIs(t, err, apperrors.ErrRefreshTokenExpired)
				require.Equal(t, 0, repo.Len(), "expired token must be removed on lookup")
			})
		})

		t.Run("use revoked token", func(t *testing.T) {
			withManager(t, func(m *TokenManager, repo *memory.RefreshTokenRepo, clock *fakeClock) {
				pair, err := m.GeneratePair(t.Context(), testUser, "internal-services")
				require.NoError(t, err)

				revoked, err := m.RevokeRefresh(t.Context(), pair.Refresh.Value)
				require.NoError(t, err)
				require.True(t, revoked)

				_, err = m.UseRefresh(t.Context(), pair.Refresh.Value)
				require.ErrorIs(t, err, apperrors.ErrRefreshTokenRevoked)

				// Revoked wins over expired
				clock.Advance(9001 * time.Second)
				_, err = m.UseRefresh(t.Context(), pair.Refresh.Value)
				require.ErrorIs(t, err, apperrors.ErrRefreshTokenRevoked)
				require.Equal(t, 1, repo.Len(), "revoked token is kept")
			})
		})

		t.Run("unknown token", func(t *testing.T) {
			withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, _ *fakeClock) {
				_, err := m.UseRefresh(t.Context(), "rt_unknown")

				require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
			})
		})
	})

	t.Run("RevokeRefresh unknown token", func(t *testing.T) {
		withManager(t, func(m *TokenManager, _ *memory.RefreshTokenRepo, _ *fakeClock) {
			revoked, err := m.RevokeRefresh(t.Context(), "rt_unknown")

			require.NoError(t, err)
			require.False(t, revoked)
		})
	})
}

func Test_refreshHasher(t *testing.T) {
	h1, err := newRefreshHasher("secret-1")
	require.NoError(t, err)
	h2, err := newRefreshHasher("secret-2")
	require.NoError(t, err)

	require.Equal(t, h1.Hash("rt_token"), h1.Hash("rt_token"), "hash must be stable")
	require.Len(t, h1.Hash("rt_token"), 64, "blake2b-256 hex digest")
	require.NotEqual(t, h1.Hash("rt_token"), h1.Hash("rt_other"))
	require.NotEqual(t, h1.Hash("rt_token"), h2.Hash("rt_token"), "hash depends on secret")
}
