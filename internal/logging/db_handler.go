package logging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DBHandler is an slog.Handler that persists ERROR+ records to system_logs.
// Failures to persist are reported on the fallback handler.
type DBHandler struct {
	db       *gorm.DB
	fallback slog.Handler
	attrs    []slog.Attr
}

func NewDBHandler(db *gorm.DB, fallback slog.Handler) *DBHandler {
	return &DBHandler{db: db, fallback: fallback}
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(ctx context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	if err := h.db.WithContext(context.WithoutCancel(ctx)).Create(&entry).Error; err != nil && h.fallback != nil {
		r := slog.NewRecord(record.Time, slog.LevelWarn, "failed to persist system log", 0)
		r.AddAttrs(slog.String("error", err.Error()))
		return h.fallback.Handle(ctx, r)
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{db: h.db, fallback: h.fallback, attrs: merged}
}

func (h *DBHandler) WithGroup(name string) slog.Handler {
	return h
}
