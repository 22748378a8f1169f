// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/pmhub/internal/app/store/audit"
	"github.com/dalemusser/pmhub/internal/app/system/authz"
	"github.com/dalemusser/pmhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Destinations for Config.Mode.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off" // disabled
)

// ValidMode reports whether s is a recognized Mode value.
func ValidMode(s string) bool {
	switch s {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Config holds audit logging configuration.
type Config struct {
	// Mode selects where events go. Empty means ModeAll.
	Mode string
	// File, when set, also appends every event as a JSON line to this path.
	// The file is rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger records project and session audit events to MongoDB (via
// audit.Store), to structured logs (via zap), and optionally to a rotated
// file. A nil *Logger is a valid no-op.
type Logger struct {
	store   *audit.Store
	zapLog  *zap.Logger
	fileLog *zap.Logger
	closer  io.Closer
	config  Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if config.Mode == "" {
		config.Mode = ModeAll
	}
	l := &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
	if config.File != "" {
		rot := &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    orDefault(config.MaxSizeMB, 10),
			MaxBackups: orDefault(config.MaxBackups, 5),
			MaxAge:     orDefault(config.MaxAgeDays, 28),
			Compress:   true,
		}
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(rot), zap.InfoLevel)
		l.fileLog = zap.New(core)
		l.closer = rot
	}
	return l
}

// Close flushes and closes the audit file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	_ = l.fileLog.Sync()
	return l.closer.Close()
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request metadata                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey struct{}

type requestMeta struct {
	ip        string
	userAgent string
}

// Middleware stores the client IP and user agent in the request context so
// that services recording events deep in the call chain can include them.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithRequest(r.Context(), r)))
	})
}

// WithRequest returns ctx carrying r's client metadata.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestMeta{
		ip:        getClientIP(r),
		userAgent: r.UserAgent(),
	})
}

func metaFrom(ctx context.Context) requestMeta {
	m, _ := ctx.Value(ctxKey{}).(requestMeta)
	return m
}

func getClientIP(r *http.Request) string {
	return ratelimit.ClientIP(r)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Core                                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func eventFields(event audit.Event) []zap.Field {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.ActorRole != "" {
		fields = append(fields, zap.String("actor_role", event.ActorRole))
	}
	if event.ProjectID != nil {
		fields = append(fields, zap.String("project_id", event.ProjectID.Hex()))
	}
	if event.TargetUserID != nil {
		fields = append(fields, zap.String("target_user_id", event.TargetUserID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}
	return fields
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil || l.config.Mode == ModeOff {
		return
	}

	meta := metaFrom(ctx)
	if event.IP == "" {
		event.IP = meta.ip
	}
	if event.UserAgent == "" {
		event.UserAgent = meta.userAgent
	}

	if l.fileLog != nil {
		l.fileLog.Info("audit event", eventFields(event)...)
	}

	if l.config.Mode == ModeAll || l.config.Mode == ModeLog {
		if event.Success {
			l.zapLog.Info("audit event", eventFields(event)...)
		} else {
			l.zapLog.Warn("audit event", eventFields(event)...)
		}
	}

	if (l.config.Mode == ModeAll || l.config.Mode == ModeDB) && l.store != nil {
		// The change already happened; record it even if the client went away.
		if err := l.store.Log(context.WithoutCancel(ctx), event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func actorEvent(actor authz.Caller, eventType string, projectID primitive.ObjectID) audit.Event {
	id := actor.ID
	pid := projectID
	return audit.Event{
		Category:  audit.CategoryProject,
		EventType: eventType,
		ActorID:   &id,
		ActorRole: actor.Role,
		ProjectID: &pid,
		Success:   true,
	}
}

// --- Project Events ---

// ProjectCreated logs creation of a project.
func (l *Logger) ProjectCreated(ctx context.Context, actor authz.Caller, projectID primitive.ObjectID, name string) {
	e := actorEvent(actor, audit.EventProjectCreated, projectID)
	e.Details = map[string]string{"name": name}
	l.Log(ctx, e)
}

// ProjectUpdated logs a partial update and the fields it touched.
func (l *Logger) ProjectUpdated(ctx context.Context, actor authz.Caller, projectID primitive.ObjectID, fields []string) {
	e := actorEvent(actor, audit.EventProjectUpdated, projectID)
	e.Details = map[string]string{"fields": strings.Join(fields, ",")}
	l.Log(ctx, e)
}

// ProjectDeleted logs a soft delete with the number of tasks it deactivated.
// cascadeErr is set when the task cascade failed after the project was
// deactivated.
func (l *Logger) ProjectDeleted(ctx context.Context, actor authz.Caller, projectID primitive.ObjectID, tasks int64, cascadeErr error) {
	e := actorEvent(actor, audit.EventProjectDeleted, projectID)
	e.Details = map[string]string{"tasks_deactivated": strconv.FormatInt(tasks, 10)}
	if cascadeErr != nil {
		e.Success = false
		e.FailureReason = "task cascade failed: " + cascadeErr.Error()
	}
	l.Log(ctx, e)
}

// ProjectDeleteFailed logs a delete that left the project unchanged,
// either because the first write failed or because the transaction
// holding both writes was rolled back.
func (l *Logger) ProjectDeleteFailed(ctx context.Context, actor authz.Caller, projectID primitive.ObjectID, err error) {
	e := actorEvent(actor, audit.EventDeleteFailed, projectID)
	e.Success = false
	if err != nil {
		e.FailureReason = err.Error()
	}
	l.Log(ctx, e)
}

// TeamMemberAdded logs an addition to a project team.
func (l *Logger) TeamMemberAdded(ctx context.Context, actor authz.Caller, projectID, userID primitive.ObjectID, role string) {
	e := actorEvent(actor, audit.EventTeamMemberAdded, projectID)
	e.TargetUserID = &userID
	e.Details = map[string]string{"role": role}
	l.Log(ctx, e)
}

// TeamMemberRemoved logs a removal from a project team. removed is false
// when the user was not on the team.
func (l *Logger) TeamMemberRemoved(ctx context.Context, actor authz.Caller, projectID, userID primitive.ObjectID, removed bool) {
	e := actorEvent(actor, audit.EventTeamMemberRemoved, projectID)
	e.TargetUserID = &userID
	e.Details = map[string]string{"removed": strconv.FormatBool(removed)}
	l.Log(ctx, e)
}

// CascadeRepaired logs a reconciliation pass that fixed orphaned tasks.
func (l *Logger) CascadeRepaired(ctx context.Context, projects int, tasks int64) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryProject,
		EventType: audit.EventCascadeRepaired,
		Success:   true,
		Details: map[string]string{
			"projects": strconv.Itoa(projects),
			"tasks":    strconv.FormatInt(tasks, 10),
		},
	})
}

// --- Session Events ---

// SessionStarted logs a bearer token exchanged for a cookie session.
func (l *Logger) SessionStarted(ctx context.Context, r *http.Request, userID primitive.ObjectID, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategorySession,
		EventType: audit.EventSessionStarted,
		ActorID:   &userID,
		ActorRole: role,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// SessionEnded logs a cookie session being cleared. userIDStr may be empty
// or malformed when no session was present.
func (l *Logger) SessionEnded(ctx context.Context, r *http.Request, userIDStr string) {
	e := audit.Event{
		Category:  audit.CategorySession,
		EventType: audit.EventSessionEnded,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
	if oid, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
		e.ActorID = &oid
	}
	l.Log(ctx, e)
}
