package audit

import (
	"context"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/models"
)

const defaultCapacity = 1000

type logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID attaches the request id to the context, so recorded events carry it
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// Recorder keeps the newest token lifecycle events in memory and writes each one to the log
type Recorder struct {
	logger   logger
	capacity int
	now      func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	events  []models.AuditEvent
}

func NewRecorder(l logger, capacity int) *Recorder {
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	return &Recorder{
		logger:   l,
		capacity: capacity,
		now:      time.Now,
		entropy:  ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// Record event. Failed events are logged with warn level.
func (r *Recorder) Record(ctx context.Context, action models.AuditAction, userID string, err error) models.AuditEvent {
	r.mu.Lock()
	now := r.now().UTC()
	event := models.AuditEvent{
		ID:        ulid.MustNew(ulid.Timestamp(now), r.entropy).String(),
		Action:    action,
		UserID:    userID,
		Success:   err == nil,
		RequestID: RequestIDFromContext(ctx),
		At:        now,
	}
	if err != nil {
		event.Reason = err.Error()
	}

	r.events = append(r.events, event)
	if over := len(r.events) - r.capacity; over > 0 {
		r.events = slices.Delete(r.events, 0, over)
	}
	r.mu.Unlock()

	args := []any{
		"id", event.ID,
		"action", string(event.Action),
		"user_id", event.UserID,
		"request_id", event.RequestID,
	}
	if event.Success {
		r.logger.Info("audit event", args...)
	} else {
		r.logger.Warn("audit event", append(args, "reason", event.Reason)...)
	}

	return event
}

// Events returns recorded events, oldest first
func (r *Recorder) Events() []models.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.events)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
}
