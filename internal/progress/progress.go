// Package progress derives lesson unlock state from a learner's
// completion history. Progression is strictly linear inside a section;
// sections are evaluated independently of each other.
package progress

import "sort"

// Lesson is one entry of a section's curriculum. Order is the unlock
// and sequencing key.
type Lesson struct {
	ID         string
	Title      string
	Difficulty string
	Order      int
	QuizID     string
}

// Section is an ordered grouping of lessons.
type Section struct {
	Title   string
	Lessons []Lesson
}

// Record is one externally supplied lesson-progress entry. The client
// only ever reads these; the server owns progress mutation.
type Record struct {
	LessonID  string
	Completed bool
}

// CompletedSet is the set of completed lesson IDs.
type CompletedSet map[string]bool

// NewCompletedSet derives the completed-lesson set from progress
// records.
func NewCompletedSet(records []Record) CompletedSet {
	set := make(CompletedSet, len(records))
	for _, r := range records {
		if r.Completed {
			set[r.LessonID] = true
		}
	}
	return set
}

// SortLessons returns the section's lessons sorted by Order ascending.
// The sort is stable: the backend does not define Order ties, so
// tied lessons keep their served order. The input is not modified.
func SortLessons(lessons []Lesson) []Lesson {
	sorted := make([]Lesson, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// Unlocked reports whether the lesson may be attempted. A lesson is
// unlocked iff its position in the section's order-sorted list is at
// most the number of completed lessons in that section: position 0 is
// always open, and each later lesson opens once everything strictly
// before it is done.
//
// Sections are independent: a later section's first lesson is open
// regardless of earlier sections' state. That mirrors the served
// product; do not "fix" it here.
func Unlocked(lesson Lesson, sectionLessons []Lesson, completed CompletedSet) bool {
	if len(sectionLessons) == 0 {
		return false
	}

	sorted := SortLessons(sectionLessons)

	completedInSection := 0
	position := -1
	for i, l := range sorted {
		if completed[l.ID] {
			completedInSection++
		}
		if l.ID == lesson.ID {
			position = i
		}
	}
	if position < 0 {
		return false
	}

	return position <= completedInSection
}
