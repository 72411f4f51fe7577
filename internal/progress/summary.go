package progress

import (
	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/curriculum"
)

// TopicSummary is the per-topic progress shown on the stats screen.
type TopicSummary struct {
	Topic        curriculum.Topic
	Completed    int
	Total        int
	AverageScore float64
	XP           int
}

// Percent returns completed/total as a whole percentage.
func (t TopicSummary) Percent() int {
	if t.Total == 0 {
		return 0
	}
	return t.Completed * 100 / t.Total
}

// Summary is a read-only digest of a learner's progress.
type Summary struct {
	Level                int
	XP                   int
	XPInLevel            int
	XPToNextLevel        int
	Streak               int
	HighestStreak        int
	LessonsCompleted     int
	LessonsTotal         int
	OverallPercent       int
	ProblemsSolved       int
	TimeSpentSeconds     int
	AchievementsUnlocked int
	AchievementsTotal    int
	Topics               []TopicSummary
}

// Summarize builds the progress digest for l against the catalog and the
// achievement table.
func Summarize(l *Learner, catalog *curriculum.Catalog, table *achievements.Table) Summary {
	s := Summary{
		Level:            l.Level(),
		XP:               l.XP,
		XPInLevel:        XPInLevel(l.XP),
		XPToNextLevel:    XPPerLevel - XPInLevel(l.XP),
		Streak:           l.Streak,
		HighestStreak:    l.Stats.HighestStreak,
		LessonsTotal:     catalog.Len(),
		ProblemsSolved:   l.Stats.TotalProblemsSolved,
		TimeSpentSeconds: l.Stats.TotalTimeSpent,
	}

	for _, topic := range catalog.Topics() {
		ts := TopicSummary{Topic: topic}
		scoreSum := 0
		for _, lesson := range catalog.ByTopic(topic) {
			ts.Total++
			rec, ok := l.CompletedLessons[lesson.ID]
			if !ok {
				continue
			}
			ts.Completed++
			ts.XP += rec.XPEarned
			scoreSum += rec.FinalScore
		}
		if ts.Completed > 0 {
			ts.AverageScore = float64(scoreSum) / float64(ts.Completed)
		}
		s.LessonsCompleted += ts.Completed
		s.Topics = append(s.Topics, ts)
	}
	if s.LessonsTotal > 0 {
		s.OverallPercent = s.LessonsCompleted * 100 / s.LessonsTotal
	}

	if table != nil {
		s.AchievementsTotal = table.Len()
		for _, d := range table.All() {
			if u, ok := l.Achievements[d.ID]; ok && u.Unlocked {
				s.AchievementsUnlocked++
			}
		}
	}
	return s
}
