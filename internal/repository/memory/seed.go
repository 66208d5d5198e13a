package memory

import (
	"time"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
)

var defaultUsers = []models.User{
	{
		ID:          "demo-user",
		Username:    "demo",
		Email:       "demo.user@example.com",
		DisplayName: "Demo User",
		Roles:       []string{"employee", "manager"},
	},
}

var defaultAuthCodes = map[string]string{
	"demo-code": "demo-user",
}

var defaultDepartments = []models.Department{
	{ID: "d-people-ops", Name: "People Operations", Description: "Human resources and people success team"},
	{ID: "d-engineering", Name: "Engineering", Description: "Product engineering organization"},
}

var defaultJobGrades = []models.JobGrade{
	{ID: "g-ic-3", Name: "IC-3", Description: "Software Engineer III"},
	{ID: "g-m-2", Name: "M-2", Description: "Manager II"},
}

func defaultEmployees() []models.Employee {
	ptr := func(s string) *string { return &s }
	date := func(value string) time.Time {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			panic(err)
		}
		return t
	}
	joined1 := date("2023-04-01T00:00:00Z")
	joined2 := date("2024-01-10T00:00:00Z")

	return []models.Employee{
		{
			ID:           "emp-demo-001",
			EmployeeCode: "E0001",
			FirstName:    "Taro",
			LastName:     "Yamada",
			Email:        "taro.yamada@example.com",
			DepartmentID: "d-engineering",
			Title:        "Engineering Manager",
			Status:       models.StatusActive,
			Phone:        ptr("+81-3-1234-5678"),
			JoinedDate:   &joined1,
			CreatedAt:    date("2023-04-01T00:00:00Z"),
			UpdatedAt:    date("2023-04-01T00:00:00Z"),
		},
		{
			ID:           "emp-demo-002",
			EmployeeCode: "E0002",
			FirstName:    "Hanako",
			LastName:     "Sato",
			Email:        "hanako.sato@example.com",
			DepartmentID: "d-people-ops",
			Title:        "HR Specialist",
			Status:       models.StatusOnLeave,
			ManagerID:    ptr("emp-demo-001"),
			JoinedDate:   &joined2,
			CreatedAt:    date("2024-01-10T00:00:00Z"),
			UpdatedAt:    date("2024-07-15T00:00:00Z"),
		},
	}
}
