package models

// Verified access token owner as seen by other services
type UserInfo struct {
	Subject string
	Name    string
	Email   string
	Roles   []string
}
