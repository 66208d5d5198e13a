package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers/middleware"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/logger"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/obs"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/employee"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/rbac"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

// Router of auth-api
func NewAuthRouter(
	authService authService,
	roleService roleService,
	auditLog auditLog,
	metrics *obs.Metrics,
	logger logger.Logger,
) http.Handler {
	withAuth := middleware.AuthMiddleware(authService, logger)

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handleAuthHealth())
	mux.Handle("POST /oauth/token", handleToken(authService, logger))
	mux.Handle("POST /oauth/revoke", handleRevoke(authService, logger))
	mux.Handle("GET /userinfo", withAuth(handleUserInfo()))
	mux.Handle("GET /rbac/roles", handleListRoles(roleService, logger))
	mux.Handle("POST /rbac/roles", handleRegisterRole(roleService, logger))
	mux.Handle("GET /audit/events", withAuth(handleAuditEvents(auditLog)))
	mux.Handle("GET /metrics", metrics.Handler())

	return chain(mux,
		middleware.RequestID,
		middleware.LoggerMiddleware(logger),
		metrics.Instrument,
	)
}

// Router of employee-api
func NewEmployeeRouter(
	employeeService employeeService,
	metrics *obs.Metrics,
	logger logger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handleEmployeeHealth(employeeService, logger))
	mux.Handle("GET /employees", handleListEmployees(employeeService, logger))
	mux.Handle("POST /employees", handleCreateEmployee(employeeService, logger))
	mux.Handle("GET /employees/{id}", handleGetEmployee(employeeService, logger))
	mux.Handle("PATCH /employees/{id}", handleUpdateEmployee(employeeService, logger))
	mux.Handle("GET /metadata/departments", handleListDepartments(employeeService, logger))
	mux.Handle("GET /metadata/job-grades", handleListJobGrades(employeeService, logger))
	mux.Handle("GET /metrics", metrics.Handler())

	return chain(mux,
		middleware.RequestID,
		middleware.LoggerMiddleware(logger),
		metrics.Instrument,
	)
}

type authService interface {
	// Exchange authorization code for token pair
	// If code unknown: has to return apperrors.ErrAuthCodeNotFound
	// If code owner unknown: has to return apperrors.ErrUserNotFound
	ExchangeCode(ctx context.Context, code string) (models.TokenPair, error)

	// Rotate refresh token
	// If token not found: has to return apperrors.ErrRefreshTokenNotFound
	// If token revoked: has to return apperrors.ErrRefreshTokenRevoked
	// If token expired: has to return apperrors.ErrRefreshTokenExpired
	RefreshPair(ctx context.Context, refresh string) (models.TokenPair, error)

	// Revoke refresh token; false if token is unknown
	Revoke(ctx context.Context, refresh string) (bool, error)

	AccessTTL() time.Duration

	// Get access token from request
	AccessFromRequest(r *http.Request) (string, error)

	// Verify access token and describe its owner
	UserInfo(ctx context.Context, access string) (models.UserInfo, error)
}

type roleService interface {
	List(ctx context.Context) ([]models.Role, error)

	// If key is taken: has to return apperrors.ErrRoleAlreadyExists
	Register(ctx context.Context, params rbac.RegisterParams) (models.Role, error)
}

type auditLog interface {
	Events() []models.AuditEvent
}

type employeeService interface {
	// If email is taken: has to return apperrors.ErrEmailTaken
	Create(ctx context.Context, input models.EmployeeInput) (models.Employee, error)

	// If employee not found: has to return apperrors.ErrEmployeeNotFound
	// If email is taken: has to return apperrors.ErrEmailTaken
	Update(ctx context.Context, id string, patch models.EmployeePatch) (models.Employee, error)

	// If employee not found: has to return apperrors.ErrEmployeeNotFound
	Get(ctx context.Context, id string) (models.Employee, error)

	List(ctx context.Context) ([]models.Employee, error)
	Departments(ctx context.Context) ([]models.Department, error)
	JobGrades(ctx context.Context) ([]models.JobGrade, error)
	Stats(ctx context.Context) (employee.Stats, error)
}
