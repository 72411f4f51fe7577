package achievements

// Predicate names a custom unlock rule for globally eligible achievements.
type Predicate string

const (
	PredicateNone           Predicate = ""
	PredicateSpeedRunner    Predicate = "speedRunner"
	PredicateFirstTryMaster Predicate = "firstTryMaster"
	PredicateTopicMaster    Predicate = "topicMaster"
	PredicateCosmicScholar  Predicate = "cosmicScholar"
)

func (p Predicate) known() bool {
	switch p {
	case PredicateNone, PredicateSpeedRunner, PredicateFirstTryMaster,
		PredicateTopicMaster, PredicateCosmicScholar:
		return true
	default:
		return false
	}
}

// Definition is a named milestone with an unlock condition and an XP reward.
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	XPReward    int

	// ExclusiveTo lists the lessons the achievement applies to. Nil means
	// globally eligible.
	ExclusiveTo []string

	// RequiresAll turns the achievement into an aggregate: every lesson in
	// ExclusiveTo must be completed at AggregateThreshold or better.
	RequiresAll bool

	// Predicate is the rule for globally eligible achievements.
	Predicate Predicate
}

// Global reports whether the achievement is eligible for every lesson.
func (d Definition) Global() bool { return d.ExclusiveTo == nil }

// AppliesTo reports whether a lesson-exclusive achievement lists lessonID.
func (d Definition) AppliesTo(lessonID string) bool {
	for _, id := range d.ExclusiveTo {
		if id == lessonID {
			return true
		}
	}
	return false
}

// seedDefinitions returns the built-in achievement table in evaluation
// order.
func seedDefinitions() []Definition {
	return []Definition{
		// Algebra
		{ID: "stellarArithmeticMaster", Name: "Stellar Arithmetic Master", Description: "Completed Stellar Arithmetic with 80% score", Icon: "✨", Color: "#FFD700", XPReward: 30, ExclusiveTo: []string{"alg0"}},
		{ID: "linearEquationsMaster", Name: "Linear Equations Master", Description: "Completed Linear Equations with 80% score", Icon: "🧮", Color: "#00FFFF", XPReward: 50, ExclusiveTo: []string{"alg1"}},
		{ID: "cosmicDecimalsMaster", Name: "Cosmic Decimals Master", Description: "Completed Cosmic Decimals with 80% score", Icon: "☄️", Color: "#FF5555", XPReward: 70, ExclusiveTo: []string{"alg2"}},
		{ID: "orbitalPercentagesMaster", Name: "Orbital Percentages Master", Description: "Completed Orbital Percentages with 80% score", Icon: "🛰️", Color: "#4CAF50", XPReward: 90, ExclusiveTo: []string{"alg3"}},
		{ID: "algebraProdigy", Name: "Algebra Prodigy", Description: "Completed every algebra lesson with 90%+ scores", Icon: "Σ", Color: "#9C27B0", XPReward: 200, ExclusiveTo: []string{"alg0", "alg1", "alg2", "alg3"}, RequiresAll: true},

		// Geometry
		{ID: "spaceShapesMaster", Name: "Space Shapes Master", Description: "Completed Space Shapes Basics with 80% score", Icon: "🌠", Color: "#FFD700", XPReward: 30, ExclusiveTo: []string{"geo0"}},
		{ID: "threeDSpaceMaster", Name: "3D Space Master", Description: "Completed 3D Space Shapes with 80% score", Icon: "🛸", Color: "#00FFFF", XPReward: 50, ExclusiveTo: []string{"geo1"}},
		{ID: "cosmicShapesMaster", Name: "Cosmic Shapes Master", Description: "Completed Cosmic Shapes with 80% score", Icon: "🌌", Color: "#FF5555", XPReward: 70, ExclusiveTo: []string{"geo2"}},
		{ID: "alienAnglesMaster", Name: "Alien Angles Master", Description: "Completed Alien Angles with 80% score", Icon: "👽", Color: "#4CAF50", XPReward: 90, ExclusiveTo: []string{"geo3"}},
		{ID: "geometryProdigy", Name: "Geometry Prodigy", Description: "Completed every geometry lesson with 90%+ scores", Icon: "⎔", Color: "#9C27B0", XPReward: 200, ExclusiveTo: []string{"geo0", "geo1", "geo2", "geo3"}, RequiresAll: true},

		// Calculus
		{ID: "spaceRatesMaster", Name: "Space Rates Master", Description: "Completed Space Rates with 80% score", Icon: "⏱️", Color: "#FFD700", XPReward: 30, ExclusiveTo: []string{"calc0"}},
		{ID: "spacePatternsMaster", Name: "Space Patterns Master", Description: "Completed Space Patterns with 80% score", Icon: "🌌", Color: "#00FFFF", XPReward: 60, ExclusiveTo: []string{"calc1"}},
		{ID: "blackHoleLogicMaster", Name: "Black Hole Logic Master", Description: "Completed Black Hole Logic with 80% score", Icon: "🕳️", Color: "#FF5555", XPReward: 80, ExclusiveTo: []string{"calc2"}},
		{ID: "calculusProdigy", Name: "Calculus Prodigy", Description: "Completed every calculus lesson with 90%+ scores", Icon: "∫", Color: "#9C27B0", XPReward: 200, ExclusiveTo: []string{"calc0", "calc1", "calc2"}, RequiresAll: true},

		// Global
		{ID: "speedRunner", Name: "Speed Runner", Description: "Finished a lesson in under 15 seconds per problem", Icon: "⏱️", Color: "#FF9800", XPReward: 100, Predicate: PredicateSpeedRunner},
		{ID: "firstTryMaster", Name: "First Try Master", Description: "Answered every problem of a lesson on the first try", Icon: "🎯", Color: "#03A9F4", XPReward: 75, Predicate: PredicateFirstTryMaster},
		{ID: "topicMaster", Name: "Topic Master", Description: "Completed all lessons in one topic with 80%+ scores", Icon: "🎓", Color: "#9C27B0", XPReward: 150, Predicate: PredicateTopicMaster},
		{ID: "cosmicScholar", Name: "Cosmic Scholar", Description: "Completed all lessons across all topics with 80%+ scores", Icon: "🌠", Color: "#FFD700", XPReward: 500, Predicate: PredicateCosmicScholar},
	}
}
