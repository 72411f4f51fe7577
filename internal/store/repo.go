package store

import (
	"context"
	"time"

	"github.com/abhisek/cosmath/internal/session"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Learner string    // completion events only
	Purpose string    // LLM events only
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

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM events by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// CompletionEventRecord is a stored lesson completion.
type CompletionEventRecord struct {
	ID                     int
	Sequence               int64
	Timestamp              time.Time
	LearnerID              string
	SessionID              string
	LessonID               string
	FinalScore             int
	XPEarned               int
	BonusXP                int
	TimeTakenSeconds       int
	AttemptsPerProblem     []int
	UnlockedAchievementIDs []string
}

// Result converts the event back into a completion result. Lesson title
// and topic are not stored with the event.
func (e CompletionEventRecord) Result() session.CompletionResult {
	return session.CompletionResult{
		SessionID:               e.SessionID,
		LessonID:                e.LessonID,
		FinalScore:              e.FinalScore,
		TimeTakenSeconds:        e.TimeTakenSeconds,
		XPEarned:                e.XPEarned,
		BonusXPFromAchievements: e.BonusXP,
		AttemptsPerProblem:      e.AttemptsPerProblem,
		UnlockedAchievementIDs:  e.UnlockedAchievementIDs,
		CompletedAt:             e.Timestamp,
	}
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendCompletion records a finished lesson.
	AppendCompletion(ctx context.Context, learnerID string, r session.CompletionResult) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose sums token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel sums token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// QueryCompletions returns completion events, newest first.
	QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error)

	// Recent returns up to limit completions for a learner, newest first.
	Recent(ctx context.Context, learnerID string, limit int) ([]session.CompletionResult, error)
}
