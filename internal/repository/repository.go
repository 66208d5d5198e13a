package repository

import (
	"context"
	"time"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
)

// User repository interface
type UserRepo interface {
	// Get user by it's id
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID string) (models.User, error)
}

// Authorization code repository interface
type AuthCodeRepo interface {
	// Look up the code and delete it in one step, so the code can be redeemed only once
	// If code not found must return apperrors.ErrAuthCodeNotFound
	Consume(ctx context.Context, code string) (userID string, err error)
}

// RefreshToken repository interface
// Tokens are addressed by hash, raw token values never reach the repository
type RefreshTokenRepo interface {
	Save(ctx context.Context, token models.RefreshToken) error

	// Return the token even if it expired or revoked
	// If token not found must return apperrors.ErrRefreshTokenNotFound
	Get(ctx context.Context, tokenHash string) (models.RefreshToken, error)

	// Delete the token and report whether it was present
	// Deleting unknown token is not an error, only one concurrent caller gets deleted == true
	Delete(ctx context.Context, tokenHash string) (deleted bool, err error)

	// Set RevokedAt if it's not set yet and return the stored record
	// If token not found must return apperrors.ErrRefreshTokenNotFound
	Revoke(ctx context.Context, tokenHash string, at time.Time) (models.RefreshToken, error)
}

// Custom role repository interface
type RoleRepo interface {
	// Store role unless a role with the same key exists
	// If exists must return apperrors.ErrRoleAlreadyExists
	CreateRole(ctx context.Context, role models.Role) error

	// List custom roles in insertion order
	ListRoles(ctx context.Context) ([]models.Role, error)
}

// Employee repository interface
type EmployeeRepo interface {
	// Insert or replace employee
	SaveEmployee(ctx context.Context, e models.Employee) error

	// If employee not found must return apperrors.ErrEmployeeNotFound
	GetEmployee(ctx context.Context, id string) (models.Employee, error)

	// List employees in insertion order
	ListEmployees(ctx context.Context) ([]models.Employee, error)

	// Check whether any employee except excludeID uses the email
	EmailExists(ctx context.Context, email string, excludeID string) (bool, error)

	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListJobGrades(ctx context.Context) ([]models.JobGrade, error)
}
