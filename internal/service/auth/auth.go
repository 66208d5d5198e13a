package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/auth/tokenmanager"
)

const (
	defaultAccessHeaderName = "Authorization"
	defaultAccessAuthScheme = "Bearer"

	unknownUserName  = "Unknown User"
	unknownUserEmail = "unknown@example.com"
)

// Access token was not presented at all
var ErrNoAccessToken = errors.New("access token not provided")

type Config struct {
	// Header to read access token from
	// If not set than default is used
	AccessHeaderName string

	// Auth scheme stripped from the header value, compared case insensitive
	// If not set than default is used
	AccessAuthScheme string
}

type tokenManager interface {
	// Issue access token and store new refresh token for the user
	GeneratePair(ctx context.Context, user models.User, audience string) (models.TokenPair, error)

	// Redeem refresh token; the token can't be used again after the call
	// If token not found: has to return apperrors.ErrRefreshTokenNotFound
	// If token revoked: has to return apperrors.ErrRefreshTokenRevoked
	// If token expired: has to return apperrors.ErrRefreshTokenExpired
	UseRefresh(ctx context.Context, refresh string) (models.RefreshToken, error)

	// Mark refresh token revoked; false if token unknown
	RevokeRefresh(ctx context.Context, refresh string) (bool, error)

	// Has to return error wrapping apperrors.ErrInvalidToken for any invalid token
	ParseAccess(access string) (tokenmanager.AccessTokenClaims, error)

	// Default audience for new tokens
	Audience() string

	AccessTTL() time.Duration
}

type auditRecorder interface {
	Record(ctx context.Context, action models.AuditAction, userID string, err error) models.AuditEvent
}

// Auth service
type AuthService struct {
	accessHeaderName string
	accessAuthScheme string

	tokens tokenManager
	audit  auditRecorder

	userRepo repository.UserRepo
	codeRepo repository.AuthCodeRepo
}

func NewService(
	cfg Config,
	tokens tokenManager,
	audit auditRecorder,
	userRepo repository.UserRepo,
	codeRepo repository.AuthCodeRepo,
) (*AuthService, error) {
	if cfg.AccessHeaderName == "" {
		cfg.AccessHeaderName = defaultAccessHeaderName
	}
	if cfg.AccessAuthScheme == "" {
		cfg.AccessAuthScheme = defaultAccessAuthScheme
	}

	return &AuthService{
		accessHeaderName: cfg.AccessHeaderName,
		accessAuthScheme: cfg.AccessAuthScheme,
		tokens:           tokens,
		audit:            audit,
		userRepo:         userRepo,
		codeRepo:         codeRepo,
	}, nil
}

// Exchange authorization code for a token pair
// The code is consumed before tokens are issued and is not restored if issuing fails
func (s *AuthService) ExchangeCode(ctx context.Context, code string) (models.TokenPair, error) {
	if code == "" {
		return models.TokenPair{}, fmt.Errorf("%w: code is required", apperrors.ErrInvalidRequest)
	}

	userID, err := s.codeRepo.Consume(ctx, code)
	if err != nil {
		s.audit.Record(ctx, models.AuditIssueToken, "", err)
		return models.TokenPair{}, fmt.Errorf("can't exchange code. Err: %w", err)
	}

	pair, err := s.issue(ctx, userID, s.tokens.Audience())
	s.audit.Record(ctx, models.AuditIssueToken, userID, err)
	return pair, err
}

// Rotate refresh token: the old one is gone regardless of the new pair issuing result
func (s *AuthService) RefreshPair(ctx context.Context, refresh string) (models.TokenPair, error) {
	if refresh == "" {
		return models.TokenPair{}, fmt.Errorf("%w: refresh_token is required", apperrors.ErrInvalidRequest)
	}

	token, err := s.tokens.UseRefresh(ctx, refresh)
	if err != nil {
		s.audit.Record(ctx, models.AuditRefreshToken, token.UserID, err)
		return models.TokenPair{}, fmt.Errorf("can't refresh token pair. Err: %w", err)
	}

	pair, err := s.issue(ctx, token.UserID, token.Audience)
	s.audit.Record(ctx, models.AuditRefreshToken, token.UserID, err)
	return pair, err
}

// Revoke refresh token
// Returns false if the token is unknown or empty, that is not an error
func (s *AuthService) Revoke(ctx context.Context, refresh string) (bool, error) {
	revoked, err := s.tokens.RevokeRefresh(ctx, refresh)
	if err == nil && !revoked {
		s.audit.Record(ctx, models.AuditRevokeToken, "", apperrors.ErrRefreshTokenNotFound)
		return false, nil
	}

	s.audit.Record(ctx, models.AuditRevokeToken, "", err)
	return revoked, err
}

// Lifetime of issued access tokens
func (s *AuthService) AccessTTL() time.Duration {
	return s.tokens.AccessTTL()
}

// Get access token from request header
// Has to return ErrNoAccessToken if header is missing or empty
func (s *AuthService) AccessFromRequest(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get(s.accessHeaderName))
	if header == "" {
		return "", ErrNoAccessToken
	}

	prefix := s.accessAuthScheme + " "
	if len(header) >= len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		header = strings.TrimSpace(header[len(prefix):])
	}

	return header, nil
}

// Verify access token and describe its owner
// Claims win over stored user data, stored data wins over placeholders
func (s *AuthService) UserInfo(ctx context.Context, access string) (models.UserInfo, error) {
	claims, err := s.tokens.ParseAccess(access)
	if err != nil {
		s.audit.Record(ctx, models.AuditVerifyToken, "", err)
		return models.UserInfo{}, err
	}
	s.audit.Record(ctx, models.AuditVerifyToken, claims.Subject, nil)

	info := models.UserInfo{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Roles:   claims.Roles,
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.Subject)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrUserNotFound):
		user = models.User{DisplayName: unknownUserName, Email: unknownUserEmail}
	default:
		return models.UserInfo{}, fmt.Errorf("can't get user. Err: %w", err)
	}

	if info.Name == "" {
		info.Name = user.DisplayName
	}
	if info.Email == "" {
		info.Email = user.Email
	}
	if info.Roles == nil {
		info.Roles = user.Roles
	}
	if info.Name == "" {
		info.Name = unknownUserName
	}
	if info.Email == "" {
		info.Email = unknownUserEmail
	}
	if info.Roles == nil {
		info.Roles = []string{}
	}

	return info, nil
}

func (s *AuthService) issue(ctx context.Context, userID string, audience string) (models.TokenPair, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("can't issue tokens. Err: %w", err)
	}

	pair, err := s.tokens.GeneratePair(ctx, user, audience)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token could not generated, sorry. Err: %w", err)
	}

	return pair, nil
}
