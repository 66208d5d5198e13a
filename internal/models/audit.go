package models

import (
	"time"
)

type AuditAction string

const (
	AuditIssueToken   AuditAction = "ISSUE_TOKEN"
	AuditRefreshToken AuditAction = "REFRESH_TOKEN"
	AuditRevokeToken  AuditAction = "REVOKE_TOKEN"
	AuditVerifyToken  AuditAction = "VERIFY_TOKEN"
)

type AuditEvent struct {
	ID        string      `json:"id"`
	Action    AuditAction `json:"action"`
	UserID    string      `json:"userId,omitempty"`
	Success   bool        `json:"success"`
	Reason    string      `json:"reason,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	At        time.Time   `json:"at"`
}
