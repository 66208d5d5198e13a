package models

type User struct {
	ID          string
	Username    string
	Email       string
	DisplayName string
	Roles       []string
}
