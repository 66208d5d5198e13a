package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository"
)

var _ repository.EmployeeRepo = (*EmployeeRepo)(nil)

type EmployeeRepo struct {
	mu          sync.RWMutex
	employees   map[string]models.Employee
	order       []string // ids in insertion order
	departments []models.Department
	jobGrades   []models.JobGrade
}

// Create repo filled with seed employees and reference data
func NewEmployeeRepo() *EmployeeRepo {
	r := &EmployeeRepo{}
	r.Reset()
	return r
}

func (r *EmployeeRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	seed := defaultEmployees()
	r.employees = make(map[string]models.Employee, len(seed))
	r.order = make([]string, 0, len(seed))
	for _, e := range seed {
		r.employees[e.ID] = e
		r.order = append(r.order, e.ID)
	}

	r.departments = slices.Clone(defaultDepartments)
	r.jobGrades = slices.Clone(defaultJobGrades)
}

func (r *EmployeeRepo) SaveEmployee(_ context.Context, e models.Employee) error {
	if e.ID == "" {
		return fmt.Errorf("repo error: empty employee id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[e.ID]; !ok {
		r.order = append(r.order, e.ID)
	}
	r.employees[e.ID] = e
	return nil
}

func (r *EmployeeRepo) GetEmployee(_ context.Context, id string) (models.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return e, fmt.Errorf("repo error: %w", apperrors.ErrEmployeeNotFound)
	}
	return e, nil
}

func (r *EmployeeRepo) ListEmployees(_ context.Context) ([]models.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Employee, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.employees[id])
	}
	return list, nil
}

// Emails are compared as is, without case folding
func (r *EmployeeRepo) EmailExists(_ context.Context, email string, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, e := range r.employees {
		if id != excludeID && e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *EmployeeRepo) ListDepartments(_ context.Context) ([]models.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.departments), nil
}

func (r *EmployeeRepo) ListJobGrades(_ context.Context) ([]models.JobGrade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.jobGrades), nil
}
