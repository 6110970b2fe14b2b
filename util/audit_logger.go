package util

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ariebrainware/cosec-marketplace/model"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType represents different types of audited events
type AuditEventType string

const (
	EventAdminAction        AuditEventType = "ADMIN_ACTION"
	EventUnauthorizedAccess AuditEventType = "UNAUTHORIZED_ACCESS"
	EventForbiddenAccess    AuditEventType = "FORBIDDEN_ACCESS"
	EventRateLimitExceeded  AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity AuditEventType = "SUSPICIOUS_ACTIVITY"
)

// AuditEvent represents an event to be logged and persisted
type AuditEvent struct {
	EventType  AuditEventType
	ActorEmail string
	IP         string
	UserAgent  string
	Message    string
	Details    map[string]interface{}
}

// AuditLogger writes audit events to the structured log and, when a database
// is attached, to the audit_logs table.
type AuditLogger struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAuditLogger returns a logger persisting to db. A nil db only logs.
func NewAuditLogger(db *gorm.DB, logger *zap.Logger) *AuditLogger {
	return &AuditLogger{db: db, logger: logger.Named("audit")}
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// Log records event. Persistence is best-effort: failures are logged and
// never returned to the caller.
func (a *AuditLogger) Log(event AuditEvent) {
	if a == nil {
		return
	}
	location := GetIPLocation(event.IP).String()

	a.logger.Info(sanitizeLogValue(event.Message),
		zap.String("event", string(event.EventType)),
		zap.String("actor", sanitizeLogValue(event.ActorEmail)),
		zap.String("ip", sanitizeLogValue(event.IP)),
		zap.String("location", location),
		zap.Int("details_count", len(event.Details)),
	)

	if a.db == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.AuditLog{
		EventType:  string(event.EventType),
		ActorEmail: sanitizeLogValue(event.ActorEmail),
		IP:         sanitizeLogValue(event.IP),
		Location:   sanitizeLogValue(location),
		UserAgent:  sanitizeLogValue(event.UserAgent),
		Message:    sanitizeLogValue(event.Message),
		Details:    details,
	}
	if err := a.db.Create(&entry).Error; err != nil {
		a.logger.Warn("failed to persist audit event", zap.Error(err))
	}
}

// LogUnauthorizedAccess logs a request rejected for missing or bad credentials.
func (a *AuditLogger) LogUnauthorizedAccess(ip, resource, reason string) {
	a.Log(AuditEvent{
		EventType: EventUnauthorizedAccess,
		IP:        ip,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func (a *AuditLogger) LogRateLimitExceeded(ip, endpoint string) {
	a.Log(AuditEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}
