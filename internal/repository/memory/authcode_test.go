package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/apperrors"
)

func Test_AuthCodeRepo(t *testing.T) {
	t.Run("seed code consumed once", func(t *testing.T) {
		repo := NewAuthCodeRepo()

		userID, err := repo.Consume(t.Context(), "demo-code")
		require.NoError(t, err)
		require.Equal(t, "demo-user", userID)

		_, err = repo.Consume(t.Context(), "demo-code")
		require.ErrorIs(t, err, apperrors.ErrAuthCodeNotFound, "code must be single use")
	})

	t.Run("unknown code", func(t *testing.T) {
		repo := NewAuthCodeRepo()

		_, err := repo.Consume(t.Context(), "unknown")

		require.ErrorIs(t, err, apperrors.ErrAuthCodeNotFound)
	})

	t.Run("reset restores seed", func(t *testing.T) {
		repo := NewAuthCodeRepo()
		repo.Add("extra-code", "someone")
		_, err := repo.Consume(t.Context(), "demo-code")
		require.NoError(t, err)

		repo.Reset()

		userID, err := repo.Consume(t.Context(), "demo-code")
		require.NoError(t, err)
		require.Equal(t, "demo-user", userID)
		_, err = repo.Consume(t.Context(), "extra-code")
		require.ErrorIs(t, err, apperrors.ErrAuthCodeNotFound)
	})
}
