package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/progress"
)

// ProgressRepo implements progress.Repo on SQLite. Apply runs in a single
// transaction using relative updates and keyed upserts, so concurrent
// completions for the same learner never lose increments.
type ProgressRepo struct {
	db *sql.DB
}

var _ progress.Repo = (*ProgressRepo)(nil)

const (
	insertLearnerSQL = `INSERT INTO learners
		(id, display_name, xp, streak, highest_streak, problems_solved, time_spent, last_active_day, created_at)
		VALUES (?, ?, 0, 0, 0, 0, 0, '', ?)
		ON CONFLICT (id) DO NOTHING`

	// SET expressions see the row as it was before the update, so
	// last_active_day here is the previous day.
	applyLearnerSQL = `UPDATE learners SET
		xp = xp + ?,
		streak = CASE WHEN last_active_day = ? THEN streak + 1 ELSE 1 END,
		highest_streak = MAX(highest_streak, CASE WHEN last_active_day = ? THEN streak + 1 ELSE 1 END),
		problems_solved = problems_solved + ?,
		time_spent = time_spent + ?,
		last_active = ?,
		last_active_day = ?
		WHERE id = ?`

	upsertSkillSQL = `INSERT INTO learner_skills (learner_id, topic, count)
		VALUES (?, ?, 1)
		ON CONFLICT (learner_id, topic) DO UPDATE SET count = count + 1`

	upsertLessonSQL = `INSERT INTO completed_lessons
		(learner_id, lesson_id, lesson_title, topic, final_score, best_score, xp_earned, time_taken, attempts, plays, achievements, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT (learner_id, lesson_id) DO UPDATE SET
			lesson_title = excluded.lesson_title,
			topic = excluded.topic,
			final_score = excluded.final_score,
			best_score = MAX(best_score, excluded.best_score),
			xp_earned = excluded.xp_earned,
			time_taken = excluded.time_taken,
			attempts = excluded.attempts,
			plays = plays + 1,
			achievements = excluded.achievements,
			completed_at = excluded.completed_at`

	insertUnlockSQL = `INSERT INTO achievement_unlocks
		(learner_id, achievement_id, lesson_id, xp_earned, unlocked_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, achievement_id) DO NOTHING`

	creditUnlockSQL = `UPDATE learners SET xp = xp + ? WHERE id = ?`
)

type execStep struct {
	name string
	sql  string
	args []any
}

func (r *ProgressRepo) Ensure(ctx context.Context, learnerID, displayName string) (*progress.Learner, error) {
	if _, err := r.db.ExecContext(ctx, insertLearnerSQL, learnerID, displayName, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("create learner: %w", err)
	}
	return r.Load(ctx, learnerID)
}

func (r *ProgressRepo) Apply(ctx context.Context, d progress.Delta) error {
	achievements, err := marshalList(d.Lesson.Achievements)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	at := d.At.UTC()
	steps := []execStep{
		{"create learner", insertLearnerSQL, []any{d.LearnerID, "", at}},
		{"update learner", applyLearnerSQL, []any{d.XP, d.Day, d.Day, d.ProblemsSolved, d.TimeSpent, at, d.Day, d.LearnerID}},
		{"upsert lesson", upsertLessonSQL, []any{
			d.LearnerID, d.Lesson.LessonID, d.Lesson.LessonTitle, string(d.Lesson.Topic),
			d.Lesson.FinalScore, d.Lesson.BestScore, d.Lesson.XPEarned, d.Lesson.TimeTakenSeconds,
			d.Lesson.Attempts, achievements, d.Lesson.CompletedAt.UTC(),
		}},
	}
	if d.Topic != "" {
		steps = append(steps, execStep{"upsert skill", upsertSkillSQL, []any{d.LearnerID, string(d.Topic)}})
	}
	for _, s := range steps {
		if _, err := tx.ExecContext(ctx, s.sql, s.args...); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	for _, u := range d.Unlocks {
		res, err := tx.ExecContext(ctx, insertUnlockSQL,
			d.LearnerID, u.AchievementID, u.LessonID, u.XPEarned, u.UnlockedAt.UTC())
		if err != nil {
			return fmt.Errorf("insert unlock %s: %w", u.AchievementID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert unlock %s: %w", u.AchievementID, err)
		}
		if n != 1 || u.XPEarned == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, creditUnlockSQL, u.XPEarned, d.LearnerID); err != nil {
			return fmt.Errorf("credit unlock %s: %w", u.AchievementID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *ProgressRepo) Load(ctx context.Context, learnerID string) (*progress.Learner, error) {
	b := entsql.Dialect(dialect.SQLite)

	query, args := b.Select(
		"id", "display_name", "xp", "streak", "highest_streak", "problems_solved",
		"time_spent", "last_active", "last_active_day", "created_at",
	).
		From(entsql.Table(tableLearners)).
		Where(entsql.EQ("id", learnerID)).
		Query()

	var (
		l          progress.Learner
		lastActive sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&l.ID, &l.DisplayName, &l.XP, &l.Streak, &l.Stats.HighestStreak,
		&l.Stats.TotalProblemsSolved, &l.Stats.TotalTimeSpent,
		&lastActive, &l.LastActiveDay, &l.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, progress.ErrLearnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load learner: %w", err)
	}
	l.LastActive = lastActive.Time
	l.Skills = make(map[curriculum.Topic]int)
	l.CompletedLessons = make(map[string]progress.CompletedLesson)
	l.Achievements = make(map[string]progress.Unlock)
	l.LessonAttempts = make(map[string]int)

	if err := r.loadSkills(ctx, b, &l); err != nil {
		return nil, err
	}
	if err := r.loadLessons(ctx, b, &l); err != nil {
		return nil, err
	}
	if err := r.loadUnlocks(ctx, b, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ProgressRepo) loadSkills(ctx context.Context, b *entsql.DialectBuilder, l *progress.Learner) error {
	query, args := b.Select("topic", "count").
		From(entsql.Table(tableSkills)).
		Where(entsql.EQ("learner_id", l.ID)).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("load skills: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			topic string
			n     int
		)
		if err := rows.Scan(&topic, &n); err != nil {
			return fmt.Errorf("scan skill: %w", err)
		}
		l.Skills[curriculum.Topic(topic)] = n
	}
	return rows.Err()
}

func (r *ProgressRepo) loadLessons(ctx context.Context, b *entsql.DialectBuilder, l *progress.Learner) error {
	query, args := b.Select(
		"lesson_id", "lesson_title", "topic", "final_score", "best_score", "xp_earned",
		"time_taken", "attempts", "plays", "achievements", "completed_at",
	).
		From(entsql.Table(tableCompletedLessons)).
		Where(entsql.EQ("learner_id", l.ID)).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			c            progress.CompletedLesson
			topic        string
			plays        int
			achievements string
		)
		err := rows.Scan(
			&c.LessonID, &c.LessonTitle, &topic, &c.FinalScore, &c.BestScore, &c.XPEarned,
			&c.TimeTakenSeconds, &c.Attempts, &plays, &achievements, &c.CompletedAt,
		)
		if err != nil {
			return fmt.Errorf("scan lesson: %w", err)
		}
		c.Topic = curriculum.Topic(topic)
		if err := json.Unmarshal([]byte(achievements), &c.Achievements); err != nil {
			return fmt.Errorf("decode lesson achievements: %w", err)
		}
		l.CompletedLessons[c.LessonID] = c
		l.LessonAttempts[c.LessonID] = plays
	}
	return rows.Err()
}

func (r *ProgressRepo) loadUnlocks(ctx context.Context, b *entsql.DialectBuilder, l *progress.Learner) error {
	query, args := b.Select("achievement_id", "lesson_id", "xp_earned", "unlocked_at").
		From(entsql.Table(tableUnlocks)).
		Where(entsql.EQ("learner_id", l.ID)).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("load achievements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		u := progress.Unlock{Unlocked: true}
		if err := rows.Scan(&u.AchievementID, &u.LessonID, &u.XPEarned, &u.UnlockedAt); err != nil {
			return fmt.Errorf("scan achievement: %w", err)
		}
		l.Achievements[u.AchievementID] = u
	}
	return rows.Err()
}

// Reset deletes every row belonging to the learner.
func (r *ProgressRepo) Reset(ctx context.Context, learnerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	b := entsql.Dialect(dialect.SQLite)
	for _, table := range []string{tableSkills, tableCompletedLessons, tableUnlocks} {
		query, args := b.Delete(table).Where(entsql.EQ("learner_id", learnerID)).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	query, args := b.Delete(tableLearners).Where(entsql.EQ("id", learnerID)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete learner: %w", err)
	}
	return tx.Commit()
}
