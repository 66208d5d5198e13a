package models

import (
	"slices"
)

type Role struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
}

// Built-in roles in declaration order
var BuiltinRoles = []Role{
	{Key: "employee", DisplayName: "employee", Description: "Standard permissions for regular employees"},
	{Key: "manager", DisplayName: "manager", Description: "Approval and reporting permissions for department managers"},
	{Key: "hr_admin", DisplayName: "hr_admin", Description: "Administrator permissions for the HR department"},
	{Key: "finance_admin", DisplayName: "finance_admin", Description: "Administrator permissions for the finance department"},
	{Key: "system_admin", DisplayName: "system_admin", Description: "Full permissions for system operators"},
}

func IsBuiltinRole(key string) bool {
	return slices.ContainsFunc(BuiltinRoles, func(r Role) bool {
		return r.Key == key
	})
}

// FilterBuiltinRoles keeps built-in roles only, preserving the input order
func FilterBuiltinRoles(roles []string) []string {
	filtered := make([]string, 0, len(roles))
	for _, role := range roles {
		if IsBuiltinRole(role) {
			filtered = append(filtered, role)
		}
	}
	return filtered
}
