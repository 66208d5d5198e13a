package models

import (
	"time"
)

type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "active"
	StatusOnLeave    EmployeeStatus = "on_leave"
	StatusTerminated EmployeeStatus = "terminated"
	StatusProbation  EmployeeStatus = "probation"
)

// Layout accepted for joinedDate: UTC only, offsets are rejected
// Fractional seconds are accepted on parse
const DateTimeLayout = "2006-01-02T15:04:05Z"

type Employee struct {
	ID           string
	EmployeeCode string
	FirstName    string
	LastName     string
	Email        string
	DepartmentID string
	Title        string
	Status       EmployeeStatus
	Phone        *string
	ManagerID    *string
	JoinedDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Department struct {
	ID          string
	Name        string
	Description string
	ManagerID   *string
}

type JobGrade struct {
	ID          string
	Name        string
	Description string
}

// Fields accepted when creating an employee
type EmployeeInput struct {
	EmployeeCode string          `json:"employeeCode" validate:"required,max=64"`
	FirstName    string          `json:"firstName" validate:"required"`
	LastName     string          `json:"lastName" validate:"required"`
	Email        string          `json:"email" validate:"required,email"`
	DepartmentID string          `json:"departmentId" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	Status       *EmployeeStatus `json:"status" validate:"omitnil,oneof=active on_leave terminated probation"`
	Phone        *string         `json:"phone"`
	ManagerID    *string         `json:"managerId" validate:"omitnil,min=1"`
	JoinedDate   *string         `json:"joinedDate" validate:"omitnil,datetime=2006-01-02T15:04:05Z"`
}

// Partial update. A nil field means "not provided" and keeps the current value.
type EmployeePatch struct {
	EmployeeCode *string         `json:"employeeCode" validate:"omitnil,min=1,max=64"`
	FirstName    *string         `json:"firstName" validate:"omitnil,min=1"`
	LastName     *string         `json:"lastName" validate:"omitnil,min=1"`
	Email        *string         `json:"email" validate:"omitnil,email"`
	DepartmentID *string         `json:"departmentId" validate:"omitnil,min=1"`
	Title        *string         `json:"title" validate:"omitnil,min=1"`
	Status       *EmployeeStatus `json:"status" validate:"omitnil,oneof=active on_leave terminated probation"`
	Phone        *string         `json:"phone"`
	ManagerID    *string         `json:"managerId" validate:"omitnil,min=1"`
	JoinedDate   *string         `json:"joinedDate" validate:"omitnil,datetime=2006-01-02T15:04:05Z"`
}

func (p EmployeePatch) IsEmpty() bool {
	return p.EmployeeCode == nil &&
		p.FirstName == nil &&
		p.LastName == nil &&
		p.Email == nil &&
		p.DepartmentID == nil &&
		p.Title == nil &&
		p.Status == nil &&
		p.Phone == nil &&
		p.ManagerID == nil &&
		p.JoinedDate == nil
}

// Apply merges provided fields into a copy of e and refreshes UpdatedAt.
// JoinedDate must be already validated, an unparsable value is ignored.
func (p EmployeePatch) Apply(e Employee, now time.Time) Employee {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&e.EmployeeCode, p.EmployeeCode)
	setString(&e.FirstName, p.FirstName)
	setString(&e.LastName, p.LastName)
	setString(&e.Email, p.Email)
	setString(&e.DepartmentID, p.DepartmentID)
	setString(&e.Title, p.Title)

	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Phone != nil {
		phone := *p.Phone
		e.Phone = &phone
	}
	if p.ManagerID != nil {
		managerID := *p.ManagerID
		e.ManagerID = &managerID
	}
	if p.JoinedDate != nil {
		if joined, err := time.Parse(DateTimeLayout, *p.JoinedDate); err == nil {
			joined = joined.UTC()
			e.JoinedDate = &joined
		}
	}

	e.UpdatedAt = now
	return e
}
