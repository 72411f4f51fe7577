package curriculum

// Topic is a top-level subject grouping.
type Topic string

const (
	TopicAlgebra  Topic = "algebra"
	TopicGeometry Topic = "geometry"
	TopicCalculus Topic = "calculus"
)

// AllTopics returns all topics in display order.
func AllTopics() []Topic {
	return []Topic{TopicAlgebra, TopicGeometry, TopicCalculus}
}

// Valid reports whether t is one of the known topics.
func (t Topic) Valid() bool {
	switch t {
	case TopicAlgebra, TopicGeometry, TopicCalculus:
		return true
	default:
		return false
	}
}

// DisplayName returns the themed name shown in the lesson picker.
func (t Topic) DisplayName() string {
	switch t {
	case TopicAlgebra:
		return "Astro-Algebra"
	case TopicGeometry:
		return "Galactic Geometry"
	case TopicCalculus:
		return "Cosmic Calculus"
	default:
		return string(t)
	}
}

// Icon returns the glyph used for the topic.
func (t Topic) Icon() string {
	switch t {
	case TopicAlgebra:
		return "Σ"
	case TopicGeometry:
		return "⎔"
	case TopicCalculus:
		return "∫"
	default:
		return "?"
	}
}

// Color returns the topic accent color as a hex string.
func (t Topic) Color() string {
	switch t {
	case TopicAlgebra:
		return "#FF7043"
	case TopicGeometry:
		return "#66BB6A"
	case TopicCalculus:
		return "#42A5F5"
	default:
		return "#9E9E9E"
	}
}
