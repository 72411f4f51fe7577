package curriculum

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrLessonNotFound is returned when a lesson ID is not in the catalog.
var ErrLessonNotFound = errors.New("lesson not found")

// Catalog is a validated, read-only lesson table. Lessons handed out by the
// catalog are deep copies; mutating them does not affect the catalog.
type Catalog struct {
	lessons []Lesson
	byID    map[string]int
	byTopic map[Topic][]int
}

// New validates lessons and builds a catalog. The input slice is copied.
func New(lessons []Lesson) (*Catalog, error) {
	if err := validateLessons(lessons); err != nil {
		return nil, err
	}

	c := &Catalog{
		lessons: make([]Lesson, len(lessons)),
		byID:    make(map[string]int, len(lessons)),
		byTopic: make(map[Topic][]int),
	}
	for i, l := range lessons {
		c.lessons[i] = cloneLesson(l)
		c.byID[l.ID] = i
		c.byTopic[l.Topic] = append(c.byTopic[l.Topic], i)
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the built-in table is
// invalid, which is caught by tests.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(seedLessons())
		if err != nil {
			panic(fmt.Sprintf("built-in curriculum: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Get returns the lesson with the given ID.
func (c *Catalog) Get(id string) (Lesson, error) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %q", ErrLessonNotFound, id)
	}
	return cloneLesson(c.lessons[i]), nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns every lesson in table order.
func (c *Catalog) All() []Lesson {
	out := make([]Lesson, len(c.lessons))
	for i, l := range c.lessons {
		out[i] = cloneLesson(l)
	}
	return out
}

// ByTopic returns the lessons of one topic in table order.
func (c *Catalog) ByTopic(t Topic) []Lesson {
	idx := c.byTopic[t]
	out := make([]Lesson, len(idx))
	for i, j := range idx {
		out[i] = cloneLesson(c.lessons[j])
	}
	return out
}

// Topics returns the topics that have at least one lesson, in display order.
func (c *Catalog) Topics() []Topic {
	var out []Topic
	for _, t := range AllTopics() {
		if len(c.byTopic[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of lessons.
func (c *Catalog) Len() int { return len(c.lessons) }

// IsPlayable reports whether the lesson can be started given the set of
// completed lesson IDs: every prerequisite must be completed, or the lesson
// itself must already be completed.
func (c *Catalog) IsPlayable(id string, completed map[string]bool) bool {
	i, ok := c.byID[id]
	if !ok {
		return false
	}
	if completed[id] {
		return true
	}
	for _, p := range c.lessons[i].Prerequisites {
		if !completed[p] {
			return false
		}
	}
	return true
}

// State returns the lesson's state for the given completions.
func (c *Catalog) State(id string, completed map[string]bool) LessonState {
	switch {
	case completed[id]:
		return StateCompleted
	case c.IsPlayable(id, completed):
		return StateAvailable
	default:
		return StateLocked
	}
}

// Available returns playable lessons that have not been completed yet.
func (c *Catalog) Available(completed map[string]bool) []Lesson {
	var out []Lesson
	for _, l := range c.lessons {
		if c.State(l.ID, completed) == StateAvailable {
			out = append(out, cloneLesson(l))
		}
	}
	return out
}

func cloneLesson(l Lesson) Lesson {
	l.Prerequisites = slices.Clone(l.Prerequisites)
	problems := make([]Problem, len(l.Problems))
	for i, p := range l.Problems {
		p.Choices = slices.Clone(p.Choices)
		problems[i] = p
	}
	l.Problems = problems
	return l
}
