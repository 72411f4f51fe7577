package store

import (
	"context"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/cosmath/internal/session"
)

var completionEventColumns = []string{
	"id", "sequence", "timestamp", "learner_id", "session_id", "lesson_id",
	"final_score", "xp_earned", "bonus_xp", "time_taken", "attempts", "achievements",
}

func (r *eventRepo) AppendCompletion(ctx context.Context, learnerID string, res session.CompletionResult) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	attempts, err := marshalList(res.AttemptsPerProblem)
	if err != nil {
		return err
	}
	achievements, err := marshalList(res.UnlockedAchievementIDs)
	if err != nil {
		return err
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableCompletionEvents).
		Columns(completionEventColumns[1:]...).
		Values(
			seqNum, res.CompletedAt.UTC(), learnerID, res.SessionID, res.LessonID,
			res.FinalScore, res.XPEarned, res.BonusXPFromAchievements, res.TimeTakenSeconds,
			attempts, achievements,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save completion event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error) {
	sel := selectEvents(tableCompletionEvents, opts, completionEventColumns...)
	if opts.Learner != "" {
		sel.Where(entsql.EQ("learner_id", opts.Learner))
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var out []CompletionEventRecord
	for rows.Next() {
		var (
			e                      CompletionEventRecord
			attempts, achievements string
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp, &e.LearnerID, &e.SessionID, &e.LessonID,
			&e.FinalScore, &e.XPEarned, &e.BonusXP, &e.TimeTakenSeconds, &attempts, &achievements,
		)
		if err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		if err := json.Unmarshal([]byte(attempts), &e.AttemptsPerProblem); err != nil {
			return nil, fmt.Errorf("decode attempts: %w", err)
		}
		if err := json.Unmarshal([]byte(achievements), &e.UnlockedAchievementIDs); err != nil {
			return nil, fmt.Errorf("decode achievements: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) Recent(ctx context.Context, learnerID string, limit int) ([]session.CompletionResult, error) {
	events, err := r.QueryCompletions(ctx, QueryOpts{Learner: learnerID, Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]session.CompletionResult, len(events))
	for i, e := range events {
		out[i] = e.Result()
	}
	return out, nil
}

// marshalList encodes a slice as a JSON array, never "null".
func marshalList[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}
