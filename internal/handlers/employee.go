package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/handlers/render"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/logger"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/employee"
)

// ISO 8601 in UTC with milliseconds
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type employeeResponse struct {
	ID           string                `json:"id"`
	EmployeeCode string                `json:"employeeCode"`
	FirstName    string                `json:"firstName"`
	LastName     string                `json:"lastName"`
	Email        string                `json:"email"`
	DepartmentID string                `json:"departmentId"`
	Title        string                `json:"title"`
	Status       models.EmployeeStatus `json:"status"`
	Phone        *string               `json:"phone,omitempty"`
	ManagerID    *string               `json:"managerId,omitempty"`
	JoinedDate   *string               `json:"joinedDate,omitempty"`
	CreatedAt    string                `json:"createdAt"`
	UpdatedAt    string                `json:"updatedAt"`
}

func newEmployeeResponse(e models.Employee) employeeResponse {
	resp := employeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		DepartmentID: e.DepartmentID,
		Title:        e.Title,
		Status:       e.Status,
		Phone:        e.Phone,
		ManagerID:    e.ManagerID,
		CreatedAt:    formatTimestamp(e.CreatedAt),
		UpdatedAt:    formatTimestamp(e.UpdatedAt),
	}
	if e.JoinedDate != nil {
		joined := formatTimestamp(*e.JoinedDate)
		resp.JoinedDate = &joined
	}
	return resp
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

type employeeInvalid struct {
	Error   string                 `json:"error"`
	Details render.FlattenedErrors `json:"details"`
}

func renderEmployeeInvalid(w http.ResponseWriter, details render.FlattenedErrors) {
	render.JSONWithStatus(w, employeeInvalid{Error: errInvalidRequest, Details: details}, http.StatusBadRequest)
}

func renderEmployeeError(w http.ResponseWriter, l errorLogger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEmployeeNotFound):
		render.JSONWithStatus(w, map[string]string{"error": errNotFound}, http.StatusNotFound)
	case errors.Is(err, apperrors.ErrEmailTaken):
		render.JSONWithStatus(w, map[string]string{"error": errConflict, "message": "email must be unique"}, http.StatusConflict)
	case errors.Is(err, apperrors.ErrInvalidRequest):
		renderEmployeeInvalid(w, render.NewFormErrors(err.Error()))
	default:
		renderServerError(w, l, "employee request failed", err)
	}
}

// Bind body; on failure responds with invalid_request details and returns false
func bindEmployee[T render.Struct](w http.ResponseWriter, r *http.Request, l errorLogger) (T, bool) {
	data, err := render.Bind[T](r)
	if err == nil {
		return data, true
	}

	var reqErr *render.RequestError
	if errors.As(err, &reqErr) {
		renderEmployeeInvalid(w, reqErr.Details)
	} else {
		renderServerError(w, l, "can't bind request", err)
	}
	return data, false
}

func handleEmployeeHealth(es employeeService, logger logger.Logger) http.Handler {
	type response struct {
		Status      string `json:"status"`
		Employees   int    `json:"employees"`
		Departments int    `json:"departments"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := es.Stats(r.Context())
		if err != nil {
			renderServerError(w, logger, "can't collect stats", err)
			return
		}
		render.JSON(w, response{Status: "ok", Employees: stats.Employees, Departments: stats.Departments})
	})
}

func handleListEmployees(es employeeService, logger logger.Logger) http.Handler {
	type response struct {
		Employees []employeeResponse `json:"employees"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := es.List(r.Context())
		if err != nil {
			renderServerError(w, logger, "can't list employees", err)
			return
		}

		resp := response{Employees: make([]employeeResponse, 0, len(list))}
		for _, e := range list {
			resp.Employees = append(resp.Employees, newEmployeeResponse(e))
		}
		render.JSON(w, resp)
	})
}

type singleEmployeeResponse struct {
	Employee employeeResponse `json:"employee"`
}

func handleCreateEmployee(es employeeService, logger logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		input, ok := bindEmployee[models.EmployeeInput](w, r, logger)
		if !ok {
			return
		}

		e, err := es.Create(r.Context(), input)
		if err != nil {
			renderEmployeeError(w, logger, err)
			return
		}

		render.JSONWithStatus(w, singleEmployeeResponse{Employee: newEmployeeResponse(e)}, http.StatusCreated)
	})
}

func handleGetEmployee(es employeeService, logger logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e, err := es.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			renderEmployeeError(w, logger, err)
			return
		}

		render.JSON(w, singleEmployeeResponse{Employee: newEmployeeResponse(e)})
	})
}

// Unknown id wins over a broken body: existence is checked first
func handleUpdateEmployee(es employeeService, logger logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		if _, err := es.Get(r.Context(), id); err != nil {
			renderEmployeeError(w, logger, err)
			return
		}

		patch, ok := bindEmployee[models.EmployeePatch](w, r, logger)
		if !ok {
			return
		}
		if patch.IsEmpty() {
			renderEmployeeInvalid(w, render.NewFormErrors(employee.EmptyPatchMessage))
			return
		}

		e, err := es.Update(r.Context(), id, patch)
		if err != nil {
			renderEmployeeError(w, logger, err)
			return
		}

		render.JSON(w, singleEmployeeResponse{Employee: newEmployeeResponse(e)})
	})
}

func handleListDepartments(es employeeService, logger logger.Logger) http.Handler {
	type department struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description,omitempty"`
		ManagerID   *string `json:"managerId,omitempty"`
	}
	type response struct {
		Departments []department `json:"departments"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := es.Departments(r.Context())
		if err != nil {
			renderServerError(w, logger, "can't list departments", err)
			return
		}

		resp := response{Departments: make([]department, 0, len(list))}
		for _, d := range list {
			resp.Departments = append(resp.Departments, department{
				ID:          d.ID,
				Name:        d.Name,
				Description: d.Description,
				ManagerID:   d.ManagerID,
			})
		}
		render.JSON(w, resp)
	})
}

func handleListJobGrades(es employeeService, logger logger.Logger) http.Handler {
	type jobGrade struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	type response struct {
		JobGrades []jobGrade `json:"jobGrades"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := es.JobGrades(r.Context())
		if err != nil {
			renderServerError(w, logger, "can't list job grades", err)
			return
		}

		resp := response{JobGrades: make([]jobGrade, 0, len(list))}
		for _, g := range list {
			resp.JobGrades = append(resp.JobGrades, jobGrade{ID: g.ID, Name: g.Name, Description: g.Description})
		}
		render.JSON(w, resp)
	})
}
