package progress

import (
	"slices"
	"time"

	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/session"
)

// Delta is a lesson completion expressed as relative increments plus
// keyed, idempotent writes, so a store can merge it atomically without
// overwriting the learner document.
type Delta struct {
	LearnerID string

	// Increments. XP is the lesson XP only; each unlock carries its own
	// bonus, credited only when the unlock is new.
	XP             int
	Topic          curriculum.Topic
	ProblemsSolved int
	TimeSpent      int

	// Keyed writes. Lesson is upserted under Lesson.LessonID; each unlock is
	// inserted under its achievement ID only if absent.
	Lesson  CompletedLesson
	Unlocks []Unlock

	// At is the completion time; Day is its calendar day used for the
	// streak rule.
	At  time.Time
	Day string
}

// NewDelta converts a completion result into a delta. Achievement XP is
// looked up in table.
func NewDelta(learnerID string, r session.CompletionResult, lessonProblems int, table *achievements.Table) Delta {
	at := r.CompletedAt
	if at.IsZero() {
		at = time.Now()
	}

	d := Delta{
		LearnerID:      learnerID,
		XP:             r.XPEarned,
		Topic:          r.Topic,
		ProblemsSolved: lessonProblems,
		TimeSpent:      r.TimeTakenSeconds,
		Lesson: CompletedLesson{
			LessonID:         r.LessonID,
			LessonTitle:      r.LessonTitle,
			Topic:            r.Topic,
			FinalScore:       r.FinalScore,
			BestScore:        r.FinalScore,
			XPEarned:         r.XPEarned,
			TimeTakenSeconds: r.TimeTakenSeconds,
			Attempts:         r.TotalAttempts(),
			Achievements:     slices.Clone(r.UnlockedAchievementIDs),
			CompletedAt:      at,
		},
		At:  at,
		Day: DayKey(at),
	}
	if d.Lesson.Achievements == nil {
		d.Lesson.Achievements = []string{}
	}
	for _, id := range r.UnlockedAchievementIDs {
		xp := 0
		if def, ok := table.Get(id); ok {
			xp = def.XPReward
		}
		d.Unlocks = append(d.Unlocks, Unlock{
			AchievementID: id,
			Unlocked:      true,
			UnlockedAt:    at,
			LessonID:      r.LessonID,
			XPEarned:      xp,
		})
	}
	return d
}

// Apply merges d into l in memory, following the same rules the stores
// apply atomically.
func Apply(l *Learner, d Delta) {
	l.ensureMaps()

	l.XP += d.XP
	if d.Topic != "" {
		l.Skills[d.Topic]++
	}
	l.LessonAttempts[d.Lesson.LessonID]++

	rec := d.Lesson
	if prev, ok := l.CompletedLessons[rec.LessonID]; ok && prev.BestScore > rec.BestScore {
		rec.BestScore = prev.BestScore
	}
	l.CompletedLessons[rec.LessonID] = rec

	for _, u := range d.Unlocks {
		if _, ok := l.Achievements[u.AchievementID]; ok {
			continue
		}
		l.Achievements[u.AchievementID] = u
		l.XP += u.XPEarned
	}

	l.Streak = NextStreak(l.Streak, l.LastActiveDay, d.Day)
	l.Stats.HighestStreak = max(l.Stats.HighestStreak, l.Streak)
	l.Stats.TotalProblemsSolved += d.ProblemsSolved
	l.Stats.TotalTimeSpent += d.TimeSpent
	l.LastActive = d.At
	l.LastActiveDay = d.Day
}
