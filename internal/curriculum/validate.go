package curriculum

import (
	"fmt"
	"strings"
)

// Validate checks the built-in lesson table.
func Validate() error {
	return validateLessons(seedLessons())
}

// validateLessons performs all structural checks on the given lessons.
// Returns a combined error describing all problems found, or nil if valid.
func validateLessons(lessons []Lesson) error {
	var errs []string

	idSet := make(map[string]bool, len(lessons))

	for _, l := range lessons {
		if l.ID == "" {
			errs = append(errs, fmt.Sprintf("lesson %q has an empty ID", l.Title))
			continue
		}
		if idSet[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson ID: %q", l.ID))
		}
		idSet[l.ID] = true
	}

	for _, l := range lessons {
		if !l.Topic.Valid() {
			errs = append(errs, fmt.Sprintf("lesson %q has unknown topic %q", l.ID, l.Topic))
		}
		if l.XPReward <= 0 {
			errs = append(errs, fmt.Sprintf("lesson %q: XPReward must be > 0, got %d", l.ID, l.XPReward))
		}
		if len(l.Problems) == 0 {
			errs = append(errs, fmt.Sprintf("lesson %q has no problems", l.ID))
		}
		for i, p := range l.Problems {
			if p.Answer.IsZero() {
				errs = append(errs, fmt.Sprintf("lesson %q problem %d has no answer", l.ID, i))
			}
			if len(p.Choices) > 0 && !choicesContain(p.Choices, p.Answer) {
				errs = append(errs, fmt.Sprintf("lesson %q problem %d: choices do not include the answer", l.ID, i))
			}
		}
		for _, prereqID := range l.Prerequisites {
			if prereqID == l.ID {
				errs = append(errs, fmt.Sprintf("lesson %q lists itself as a prerequisite", l.ID))
				continue
			}
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("lesson %q references nonexistent prerequisite %q", l.ID, prereqID))
			}
		}
	}

	// Cycle check (Kahn's algorithm) over known edges only.
	inDegree := make(map[string]int, len(lessons))
	adjList := make(map[string][]string)
	for _, l := range lessons {
		if l.ID == "" {
			continue
		}
		if _, seen := inDegree[l.ID]; !seen {
			inDegree[l.ID] = 0
		}
		for _, prereqID := range l.Prerequisites {
			if !idSet[prereqID] {
				continue
			}
			inDegree[l.ID]++
			adjList[prereqID] = append(adjList[prereqID], l.ID)
		}
	}

	var queue []string
	for _, l := range lessons {
		if l.ID != "" && inDegree[l.ID] == 0 {
			queue = append(queue, l.ID)
		}
	}
	visited := make(map[string]bool, len(lessons))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}
	if len(visited) < len(idSet) {
		var cycleNodes []string
		for _, l := range lessons {
			if !visited[l.ID] && l.ID != "" {
				cycleNodes = append(cycleNodes, l.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving lessons: %s", strings.Join(cycleNodes, ", ")))
	}

	hasRoot := false
	for _, l := range lessons {
		if len(l.Prerequisites) == 0 {
			hasRoot = true
			break
		}
	}
	if len(lessons) > 0 && !hasRoot {
		errs = append(errs, "no root lessons found (at least one lesson must have no prerequisites)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func choicesContain(choices []Answer, answer Answer) bool {
	if answer.Kind() == KindSet {
		for _, m := range answer.Members() {
			if choicesContain(choices, m) {
				return true
			}
		}
		return false
	}
	for _, c := range choices {
		if c.Equal(answer) {
			return true
		}
	}
	return false
}
