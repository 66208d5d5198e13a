package tokenmanager

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository"
)

const (
	defaultAccessTokenTTL = 900 * time.Second
	defaultSigningMethod  = "HS256"

	// Refresh token lives this many access token lifetimes
	refreshTTLFactor = 10

	refreshTokenPrefix = "rt_"
)

type AccessTokenClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
	Email string   `json:"email,omitempty"`
	Name  string   `json:"name,omitempty"`
}

// Token manager with sensible default
type Config struct {
	// Secret key to sign access token and to derive refresh token hashing key
	// Required to be set
	SecretKey string

	// Value of 'iss' claim; required, checked on parse
	Issuer string

	// Value of 'aud' claim
	// If set the audience is checked on parse
	Audience string

	// Access and refresh token lifetimes
	// If not set than default is used: 900s for access and 10 access TTLs for refresh
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Clock, time.Now if not set
	Now func() time.Time
}

type TokenManager struct {
	key      []byte
	alg      jwt.SigningMethod
	issuer   string
	audience string

	accessTTL  time.Duration
	refreshTTL time.Duration

	hasher *refreshHasher
	now    func() time.Time

	refreshRepo repository.RefreshTokenRepo
}

func New(cfg Config, refreshRepo repository.RefreshTokenRepo) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("issuer must not be empty")
	}

	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTokenTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = cfg.AccessTTL * refreshTTLFactor
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	hasher, err := newRefreshHasher(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("error while creating refresh hasher. Err: %w", err)
	}

	return &TokenManager{
		key:         []byte(cfg.SecretKey),
		alg:         jwt.GetSigningMethod(defaultSigningMethod),
		issuer:      cfg.Issuer,
		audience:    cfg.Audience,
		accessTTL:   cfg.AccessTTL,
		refreshTTL:  cfg.RefreshTTL,
		hasher:      hasher,
		now:         cfg.Now,
		refreshRepo: refreshRepo,
	}, nil
}

func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

func (m *TokenManager) Audience() string {
	return m.audience
}

// Issue signed access token for the user
// Roles not known as built-in are dropped silently
func (m *TokenManager) IssueAccess(user models.User, audience string) (models.IssuedToken, error) {
	now := m.now().Truncate(time.Second)
	expiresAt := now.Add(m.accessTTL)

	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Roles: models.FilterBuiltinRoles(user.Roles),
		Email: user.Email,
		Name:  user.DisplayName,
	}
	if audience != "" {
		claims.Audience = jwt.ClaimStrings{audience}
	}

	access, err := jwt.NewWithClaims(m.alg, claims).SignedString(m.key)
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	return models.IssuedToken{Value: access, ExpiresAt: expiresAt}, nil
}

// Parse and validate access token: signature, issuer, audience and expiry
func (m *TokenManager) ParseAccess(access string) (AccessTokenClaims, error) {
	claims := AccessTokenClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	_, err := jwt.ParseWithClaims(
		access,
		&claims,
		func(t *jwt.Token) (any, error) {
			return m.key, nil
		},
		opts...,
	)
	if err != nil {
		return claims, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	return claims, nil
}

// Issue access token and refresh token; the refresh token is stored in repo
func (m *TokenManager) GeneratePair(ctx context.Context, user models.User, audience string) (models.TokenPair, error) {
	var pair models.TokenPair

	access, err := m.IssueAccess(user, audience)
	if err != nil {
		return pair, err
	}

	refresh, err := generateRefresh()
	if err != nil {
		return pair, err
	}

	now := m.now()
	refreshExpiresAt := now.Add(m.refreshTTL)
	err = m.refreshRepo.Save(ctx, models.RefreshToken{
		TokenHash: m.hasher.Hash(refresh),
		UserID:    user.ID,
		Audience:  audience,
		CreatedAt: now,
		ExpiresAt: refreshExpiresAt,
	})
	if err != nil {
		return pair, fmt.Errorf("error while saving refresh token. Err: %w", err)
	}

	return models.TokenPair{
		Access:  access,
		Refresh: models.IssuedToken{Value: refresh, ExpiresAt: refreshExpiresAt},
	}, nil
}

// Use token: return it if valid and delete, so it can't be used again
// Revoked tokens are kept, expired ones are deleted
func (m *TokenManager) UseRefresh(ctx context.Context, refresh string) (models.RefreshToken, error) {
	hash := m.hasher.Hash(refresh)

	token, err := m.refreshRepo.Get(ctx, hash)
	if err != nil {
		return token, fmt.Errorf("error while getting refresh token. Err: %w", err)
	}

	if token.IsRevoked() {
		return token, fmt.Errorf("error while using refresh token. Err: %w", apperrors.ErrRefreshTokenRevoked)
	}

	if token.IsExpired(m.now()) {
		if _, err := m.refreshRepo.Delete(ctx, hash); err != nil {
			return token, fmt.Errorf("error while deleting expired refresh token. Err: %w", err)
		}
		return token, fmt.Errorf("error while using refresh token. Err: %w", apperrors.ErrRefreshTokenExpired)
	}

	deleted, err := m.refreshRepo.Delete(ctx, hash)
	if err != nil {
		return token, fmt.Errorf("error while deleting refresh token. Err: %w", err)
	}
	if !deleted {
		// Somebody used it in between
		return token, fmt.Errorf("error while using refresh token. Err: %w", apperrors.ErrRefreshTokenNotFound)
	}

	return token, nil
}

// Revoke refresh token
// Returns false if the token is unknown
func (m *TokenManager) RevokeRefresh(ctx context.Context, refresh string) (bool, error) {
	_, err := m.refreshRepo.Revoke(ctx, m.hasher.Hash(refresh), m.now())

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrRefreshTokenNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("error while revoking refresh token. Err: %w", err)
	}
}

// Generate random refresh token: prefix and 16 random bytes hex encoded
func generateRefresh() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error while generate refresh token. Err: %w", err)
	}
	return refreshTokenPrefix + hex.EncodeToString(b), nil
}
