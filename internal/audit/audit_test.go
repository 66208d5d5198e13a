package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
)

type logCall struct {
	level string
	msg   string
	args  []any
}

type fakeLogger struct {
	calls []logCall
}

func (l *fakeLogger) Info(msg string, args ...any) {
	l.calls = append(l.calls, logCall{level: "info", msg: msg, args: args})
}

func (l *fakeLogger) Warn(msg string, args ...any) {
	l.calls = append(l.calls, logCall{level: "warn", msg: msg, args: args})
}

func TestRecorder_Record(t *testing.T) {
	t.Run("success event", func(t *testing.T) {
		l := &fakeLogger{}
		r := NewRecorder(l, 10)
		ctx := WithRequestID(context.Background(), "req-1")

		event := r.Record(ctx, models.AuditIssueToken, "demo-user", nil)

		_, err := ulid.Parse(event.ID)
		require.NoError(t, err, "event id should be ULID")
		assert.Equal(t, models.AuditIssueToken, event.Action)
		assert.Equal(t, "demo-user", event.UserID)
		assert.True(t, event.Success)
		assert.Empty(t, event.Reason)
		assert.Equal(t, "req-1", event.RequestID)

		require.Len(t, l.calls, 1)
		assert.Equal(t, "info", l.calls[0].level)
		assert.Equal(t, "audit event", l.calls[0].msg)
	})

	t.Run("failed event", func(t *testing.T) {
		l := &fakeLogger{}
		r := NewRecorder(l, 10)

		event := r.Record(context.Background(), models.AuditRefreshToken, "", errors.New("refresh token is revoked"))

		assert.False(t, event.Success)
		assert.Equal(t, "refresh token is revoked", event.Reason)
		assert.Empty(t, event.RequestID)
		require.Len(t, l.calls, 1)
		assert.Equal(t, "warn", l.calls[0].level)
		assert.Contains(t, l.calls[0].args, "reason")
	})

	t.Run("keeps newest events", func(t *testing.T) {
		r := NewRecorder(&fakeLogger{}, 2)

		first := r.Record(context.Background(), models.AuditIssueToken, "u1", nil)
		second := r.Record(context.Background(), models.AuditRefreshToken, "u2", nil)
		third := r.Record(context.Background(), models.AuditRevokeToken, "u3", nil)

		events := r.Events()
		require.Len(t, events, 2)
		assert.Equal(t, second.ID, events[0].ID)
		assert.Equal(t, third.ID, events[1].ID)
		assert.Less(t, first.ID, second.ID, "ids should be sortable by time")
	})

	t.Run("reset", func(t *testing.T) {
		r := NewRecorder(&fakeLogger{}, 0)
		r.Record(context.Background(), models.AuditVerifyToken, "u1", nil)

		r.Reset()

		require.Empty(t, r.Events())
		require.Equal(t, defaultCapacity, r.capacity)
	})
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	require.Empty(t, RequestIDFromContext(ctx), "empty id must not be stored")

	ctx = WithRequestID(context.Background(), "abc")
	require.Equal(t, "abc", RequestIDFromContext(ctx))
}
