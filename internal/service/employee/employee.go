package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/validate"
)

const EmptyPatchMessage = "At least one field must be provided for update"

type Config struct {
	// Allow several employees to share an email
	AllowDuplicateEmail bool

	// Clock, time.Now if not set
	Now func() time.Time

	// Employee id generator, uuid.NewString if not set
	NewID func() string
}

type Stats struct {
	Employees   int
	Departments int
}

type Service struct {
	allowDuplicateEmail bool
	now                 func() time.Time
	newID               func() string

	repo repository.EmployeeRepo
}

func NewService(cfg Config, repo repository.EmployeeRepo) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	return &Service{
		allowDuplicateEmail: cfg.AllowDuplicateEmail,
		now:                 cfg.Now,
		newID:               cfg.NewID,
		repo:                repo,
	}
}

// Create employee
// Has to return apperrors.ErrInvalidRequest if input is not valid
// Has to return apperrors.ErrEmailTaken if email is used and duplicates are not allowed
func (s *Service) Create(ctx context.Context, input models.EmployeeInput) (models.Employee, error) {
	if err := validate.Struct(input); err != nil {
		return models.Employee{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	if err := s.ensureEmailUnique(ctx, input.Email, ""); err != nil {
		return models.Employee{}, err
	}

	now := s.timestamp()
	e := models.Employee{
		ID:           s.newID(),
		EmployeeCode: input.EmployeeCode,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		DepartmentID: input.DepartmentID,
		Title:        input.Title,
		Status:       models.StatusActive,
		Phone:        input.Phone,
		ManagerID:    input.ManagerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Status != nil {
		e.Status = *input.Status
	}
	if input.JoinedDate != nil {
		joined, err := time.Parse(models.DateTimeLayout, *input.JoinedDate)
		if err != nil {
			return models.Employee{}, fmt.Errorf("%w: joinedDate: %w", apperrors.ErrInvalidRequest, err)
		}
		joined = joined.UTC()
		e.JoinedDate = &joined
	}

	if err := s.repo.SaveEmployee(ctx, e); err != nil {
		return models.Employee{}, fmt.Errorf("can't save employee. Err: %w", err)
	}

	return e, nil
}

// Update employee with provided fields only, updatedAt is refreshed always
// Has to return apperrors.ErrEmployeeNotFound if employee not exists
// Has to return apperrors.ErrInvalidRequest if patch is empty or not valid
// Has to return apperrors.ErrEmailTaken if new email is used by another employee
func (s *Service) Update(ctx context.Context, id string, patch models.EmployeePatch) (models.Employee, error) {
	existing, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return models.Employee{}, fmt.Errorf("can't update employee. Err: %w", err)
	}

	if patch.IsEmpty() {
		return models.Employee{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidRequest, EmptyPatchMessage)
	}
	if err := validate.Struct(patch); err != nil {
		return models.Employee{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	if patch.Email != nil {
		if err := s.ensureEmailUnique(ctx, *patch.Email, id); err != nil {
			return models.Employee{}, err
		}
	}

	updated := patch.Apply(existing, s.timestamp())
	if err := s.repo.SaveEmployee(ctx, updated); err != nil {
		return models.Employee{}, fmt.Errorf("can't save employee. Err: %w", err)
	}

	return updated, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *Service) Departments(ctx context.Context) ([]models.Department, error) {
	return s.repo.ListDepartments(ctx)
}

func (s *Service) JobGrades(ctx context.Context) ([]models.JobGrade, error) {
	return s.repo.ListJobGrades(ctx)
}

// Counts shown by health check
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return Stats{}, err
	}
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{Employees: len(employees), Departments: len(departments)}, nil
}

func (s *Service) ensureEmailUnique(ctx context.Context, email string, employeeID string) error {
	if s.allowDuplicateEmail {
		return nil
	}

	exists, err := s.repo.EmailExists(ctx, email, employeeID)
	if err != nil {
		return fmt.Errorf("can't check email. Err: %w", err)
	}
	if exists {
		return apperrors.ErrEmailTaken
	}
	return nil
}

// Millisecond precision, as timestamps are rendered with milliseconds
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
