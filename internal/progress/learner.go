// Package progress models a learner's persistent progress and the deltas a
// lesson completion applies to it.
package progress

import (
	"time"

	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/session"
)

// XPPerLevel is the XP needed to advance one level.
const XPPerLevel = 300

// Level returns floor(xp / 300) + 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPInLevel returns the XP earned since the last level boundary.
func XPInLevel(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp % XPPerLevel
}

// CompletedLesson is the keyed record for one lesson. It is overwritten on
// every completion, except BestScore which only ever rises.
type CompletedLesson struct {
	LessonID         string           `json:"lessonId" bson:"lessonId"`
	LessonTitle      string           `json:"lessonTitle" bson:"lessonTitle"`
	Topic            curriculum.Topic `json:"topic" bson:"topic"`
	FinalScore       int              `json:"finalScore" bson:"finalScore"`
	BestScore        int              `json:"bestScore" bson:"bestScore"`
	XPEarned         int              `json:"xpEarned" bson:"xpEarned"`
	TimeTakenSeconds int              `json:"timeTaken" bson:"timeTaken"`
	Attempts         int              `json:"attempts" bson:"attempts"`
	Achievements     []string         `json:"achievements" bson:"achievements"`
	CompletedAt      time.Time        `json:"completedAt" bson:"completedAt"`
}

// Unlock records an achievement the learner has earned.
type Unlock struct {
	AchievementID string    `json:"achievementId" bson:"achievementId"`
	Unlocked      bool      `json:"unlocked" bson:"unlocked"`
	UnlockedAt    time.Time `json:"date" bson:"date"`
	LessonID      string    `json:"lessonId" bson:"lessonId"`
	XPEarned      int       `json:"xpEarned" bson:"xpEarned"`
}

// Stats holds lifetime counters.
type Stats struct {
	TotalProblemsSolved int `json:"totalProblemsSolved" bson:"totalProblemsSolved"`
	TotalTimeSpent      int `json:"totalTimeSpent" bson:"totalTimeSpent"`
	HighestStreak       int `json:"highestStreak" bson:"highestStreak"`
}

// Learner is everything persisted about one learner.
type Learner struct {
	ID               string                     `json:"id" bson:"_id"`
	DisplayName      string                     `json:"displayName" bson:"displayName"`
	XP               int                        `json:"xp" bson:"xp"`
	Streak           int                        `json:"streak" bson:"streak"`
	LastActive       time.Time                  `json:"lastActive" bson:"lastActive"`
	LastActiveDay    string                     `json:"lastActiveDay" bson:"lastActiveDay"`
	Skills           map[curriculum.Topic]int   `json:"skills" bson:"skills"`
	CompletedLessons map[string]CompletedLesson `json:"completedLessons" bson:"completedLessons"`
	Achievements     map[string]Unlock          `json:"achievements" bson:"achievements"`
	LessonAttempts   map[string]int             `json:"lessonAttempts" bson:"lessonAttempts"`
	Stats            Stats                      `json:"stats" bson:"stats"`
	CreatedAt        time.Time                  `json:"createdAt" bson:"createdAt"`
}

// NewLearner returns an empty learner.
func NewLearner(id, name string, now time.Time) *Learner {
	l := &Learner{ID: id, DisplayName: name, CreatedAt: now}
	l.ensureMaps()
	return l
}

func (l *Learner) ensureMaps() {
	if l.Skills == nil {
		l.Skills = make(map[curriculum.Topic]int)
	}
	if l.CompletedLessons == nil {
		l.CompletedLessons = make(map[string]CompletedLesson)
	}
	if l.Achievements == nil {
		l.Achievements = make(map[string]Unlock)
	}
	if l.LessonAttempts == nil {
		l.LessonAttempts = make(map[string]int)
	}
}

// Level returns the learner's level.
func (l *Learner) Level() int { return Level(l.XP) }

// Completed returns the set of completed lesson IDs.
func (l *Learner) Completed() map[string]bool {
	out := make(map[string]bool, len(l.CompletedLessons))
	for id := range l.CompletedLessons {
		out[id] = true
	}
	return out
}

// History returns the snapshot the achievement evaluator reads.
func (l *Learner) History() session.History {
	h := session.History{
		Completed: make(map[string]int, len(l.CompletedLessons)),
		Unlocked:  make(map[string]bool, len(l.Achievements)),
	}
	for id, c := range l.CompletedLessons {
		h.Completed[id] = c.FinalScore
	}
	for id, u := range l.Achievements {
		if u.Unlocked {
			h.Unlocked[id] = true
		}
	}
	return h
}
