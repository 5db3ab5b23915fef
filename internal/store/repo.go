package store

import (
	"context"
	"time"
)

// Default caps for the append-only logs.
const (
	DefaultHistoryLimit  = 10
	DefaultActivityLimit = 100
)

// QueryOpts configures list queries.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Filter string    // repository-specific filter, e.g. purpose
}

// HistoryEntry is one completed exam in a user's history.
type HistoryEntry struct {
	ID               int64
	UserID           string
	SessionID        string
	ExamID           string
	Name             string
	Score            int
	Grade            string
	TakenAt          time.Time
	TimeSpentMinutes int
	QuestionsCorrect int
	TotalQuestions   int
	AutoSubmitted    bool
	Passed           bool
	Status           string
}

// HistoryRepo stores a capped, newest-first exam history per user.
type HistoryRepo interface {
	// Append adds an entry and evicts the user's oldest entries beyond keep.
	Append(ctx context.Context, e *HistoryEntry, keep int) error

	// List returns the user's entries, newest first.
	List(ctx context.Context, userID string, opts QueryOpts) ([]HistoryEntry, error)

	// Clear removes every entry for the user.
	Clear(ctx context.Context, userID string) error
}

// ActivityAction names a logged activity.
type ActivityAction string

const (
	ActionExamStarted   ActivityAction = "exam_started"
	ActionExamCompleted ActivityAction = "exam_completed"
	ActionExamExited    ActivityAction = "exam_exited"
)

// Activity is an entry in the global activity log.
type Activity struct {
	ID     int64
	UserID string
	Action ActivityAction
	ExamID string
	Data   map[string]any
	At     time.Time
}

// ActivityRepo stores the capped global activity log.
type ActivityRepo interface {
	// Append adds an activity and evicts the oldest entries beyond keep.
	Append(ctx context.Context, a *Activity, keep int) error

	// Recent returns activities newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]Activity, error)
}

// Progress is a user's running totals.
type Progress struct {
	UserID      string
	TotalExams  int
	PassedExams int
	XP          int
	UpdatedAt   time.Time
}

// ProgressRepo maintains per-user totals.
type ProgressRepo interface {
	// Record adds one finished exam to the user's totals.
	Record(ctx context.Context, userID string, passed bool, xp int) (*Progress, error)

	// Get returns the user's totals, or zero totals if none exist.
	Get(ctx context.Context, userID string) (*Progress, error)

	// Reset clears the user's totals.
	Reset(ctx context.Context, userID string) error
}

// Certificate is a credential issued for a passed exam.
type Certificate struct {
	ID           int64
	CredentialID string
	UserID       string
	ExamID       string
	Title        string
	Score        int
	Grade        string
	Tier         string
	Status       string
	IssuedAt     time.Time
}

// CertificateRepo stores issued certificates.
type CertificateRepo interface {
	// Issue stores a new certificate.
	Issue(ctx context.Context, c *Certificate) error

	// List returns the user's certificates, newest first.
	List(ctx context.Context, userID string) ([]Certificate, error)

	// Clear removes every certificate for the user.
	Clear(ctx context.Context, userID string) error
}

// User is a known display name.
type User struct {
	ID         string
	Name       string
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// UserRepo tracks display names that have signed in.
type UserRepo interface {
	// Touch records a sign-in, creating the user if needed.
	Touch(ctx context.Context, id, name string) (*User, error)

	// Recent returns users by most recent sign-in.
	Recent(ctx context.Context, limit int) ([]User, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests per provider and model.
type LLMUsage struct {
	Provider     string
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo records LLM requests.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents lists events newest first. Filter matches the purpose.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsage sums requests and tokens per provider and model.
	LLMUsage(ctx context.Context) ([]LLMUsage, error)
}
