package curriculum

// Difficulty is a coarse label shown next to a lesson.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Problem is a single question within a lesson.
type Problem struct {
	Question string   `json:"question"`
	Answer   Answer   `json:"answer"`
	Unit     string   `json:"unit,omitempty"`
	Choices  []Answer `json:"choices,omitempty"`
}

// Lesson is a named, ordered set of problems belonging to one topic.
type Lesson struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Topic         Topic      `json:"topic"`
	Problems      []Problem  `json:"problems"`
	Prerequisites []string   `json:"prerequisites"`
	XPReward      int        `json:"xpReward"`
}

// ProblemCount returns the number of problems in the lesson.
func (l Lesson) ProblemCount() int { return len(l.Problems) }

// LessonState describes a lesson relative to a learner's completions.
type LessonState int

const (
	StateLocked    LessonState = iota // Some prerequisite not yet completed
	StateAvailable                    // Playable, never completed
	StateCompleted                    // Completed at least once
)

// Icon returns the display icon for a lesson state.
func (s LessonState) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateAvailable:
		return "🚀"
	case StateCompleted:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a lesson state.
func (s LessonState) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateAvailable:
		return "Available"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}
