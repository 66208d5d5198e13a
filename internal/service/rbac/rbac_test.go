package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
	"github.com/kinobon/ai-driven-internal-systems-dev/internal/repository/memory"
)

func Test_RBAC(t *testing.T) {
	t.Run("list built-in roles first", func(t *testing.T) {
		s := NewService(memory.NewRoleRepo())
		_, err := s.Register(t.Context(), RegisterParams{Key: "auditor", DisplayName: "Auditor"})
		require.NoError(t, err)

		roles, err := s.List(t.Context())
		require.NoError(t, err)

		keys := make([]string, 0, len(roles))
		for _, r := range roles {
			keys = append(keys, r.Key)
		}
		assert.Equal(t, []string{"employee", "manager", "hr_admin", "finance_admin", "system_admin", "auditor"}, keys)
		assert.Equal(t, "employee", roles[0].DisplayName, "built-in display name is its key")
		assert.NotEmpty(t, roles[0].Description)
	})

	t.Run("list does not leak built-ins", func(t *testing.T) {
		s := NewService(memory.NewRoleRepo())
		roles, err := s.List(t.Context())
		require.NoError(t, err)

		roles[0].Key = "changed"

		require.Equal(t, "employee", models.BuiltinRoles[0].Key)
	})

	t.Run("register", func(t *testing.T) {
		s := NewService(memory.NewRoleRepo())

		role, err := s.Register(t.Context(), RegisterParams{
			Key:         "team:lead",
			DisplayName: "Team Lead",
			Description: "Leads a team",
		})

		require.NoError(t, err)
		require.Equal(t, models.Role{Key: "team:lead", DisplayName: "Team Lead", Description: "Leads a team"}, role)
	})

	tests := []struct {
		name   string
		params RegisterParams
		err    error
	}{
		{
			name:   "built-in key",
			params: RegisterParams{Key: "manager", DisplayName: "Manager"},
			err:    apperrors.ErrRoleAlreadyExists,
		},
		{
			name:   "short key",
			params: RegisterParams{Key: "ab", DisplayName: "Short"},
			err:    apperrors.ErrInvalidRole,
		},
		{
			name:   "bad key characters",
			params: RegisterParams{Key: "Team Lead", DisplayName: "Team Lead"},
			err:    apperrors.ErrInvalidRole,
		},
		{
			name:   "short display name",
			params: RegisterParams{Key: "auditor", DisplayName: "Au"},
			err:    apperrors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(memory.NewRoleRepo())

			_, err := s.Register(t.Context(), tt.params)

			require.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("duplicate custom key", func(t *testing.T) {
		s := NewService(memory.NewRoleRepo())
		_, err := s.Register(t.Context(), RegisterParams{Key: "auditor", DisplayName: "Auditor"})
		require.NoError(t, err)

		_, err = s.Register(t.Context(), RegisterParams{Key: "auditor", DisplayName: "Auditor 2"})

		require.ErrorIs(t, err, apperrors.ErrRoleAlreadyExists)
	})
}
