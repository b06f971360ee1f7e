// Package search finds assignments across a user's courses.
//
// A search resolves the set of courses, fetches each course's assignments,
// keeps those matching the text query and due-date window, and returns them
// merged and ordered by due date. One course failing to load (a 403 on a
// concluded course is common) is recorded and skipped; it never fails the
// whole search.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/jpl-au/canvas-mcp/internal/dates"
	"github.com/jpl-au/canvas-mcp/internal/htmltext"
)

// Wildcard is the query that matches every assignment. An empty query does
// the same.
const Wildcard = "*"

// Workers bounds how many courses are fetched at once.
const Workers = 4

// Source is the subset of the Canvas client a search needs.
type Source interface {
	Courses(ctx context.Context, state canvas.EnrollmentState) ([]canvas.Course, error)
	Course(ctx context.Context, courseID int) (*canvas.Course, error)
	Assignments(ctx context.Context, courseID int) ([]canvas.Assignment, error)
}

// Options controls a search.
type Options struct {
	Query            string // whitespace-separated terms, any of which may match
	DueBefore        string // inclusive, YYYY-MM-DD or timestamp
	DueAfter         string // inclusive, YYYY-MM-DD or timestamp
	IncludeCompleted bool   // search concluded courses too
	CourseID         int    // restrict to one course when non-zero
}

// Match is an assignment tagged with the course it came from.
type Match struct {
	canvas.Assignment
	CourseName string `json:"course_name"`
	CourseID   int    `json:"course_id"`
}

// Failure records a course whose assignments could not be fetched.
type Failure struct {
	CourseID   int
	CourseName string
	Err        error
}

// Result is the outcome of a search.
type Result struct {
	Courses  int // courses searched
	Matches  []Match
	Failures []Failure
}

// Reason explains an empty Result.
type Reason int

const (
	// Found means the result has matches.
	Found Reason = iota
	// NoCourses means there were no courses to search.
	NoCourses
	// NoMatches means courses were searched but nothing matched.
	NoMatches
)

// Empty reports why the result has no matches, or Found.
func (r *Result) Empty() Reason {
	switch {
	case len(r.Matches) > 0:
		return Found
	case r.Courses == 0:
		return NoCourses
	default:
		return NoMatches
	}
}

// Run executes a search. The only error returned is failure to resolve the
// set of courses; per-course failures are reported in Result.Failures.
func Run(ctx context.Context, src Source, opts Options) (*Result, error) {
	courses, err := resolveCourses(ctx, src, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Courses: len(courses)}
	if len(courses) == 0 {
		return res, nil
	}

	terms := Terms(opts.Query)
	perCourse := fetchAll(ctx, src, courses)

	for i, course := range courses {
		got := perCourse[i]
		if got.err != nil {
			slog.Warn("skipping course in search", "course_id", course.ID, "course", course.Name, "error", got.err)
			res.Failures = append(res.Failures, Failure{CourseID: course.ID, CourseName: course.Name, Err: got.err})
			continue
		}
		for _, a := range got.assignments {
			if !MatchesText(a, terms) || !dates.InRange(a.DueAt, opts.DueBefore, opts.DueAfter) {
				continue
			}
			res.Matches = append(res.Matches, Match{Assignment: a, CourseName: course.Name, CourseID: course.ID})
		}
	}

	SortByDue(res.Matches)
	return res, nil
}

func resolveCourses(ctx context.Context, src Source, opts Options) ([]canvas.Course, error) {
	if opts.CourseID != 0 {
		c, err := src.Course(ctx, opts.CourseID)
		if err != nil {
			return nil, fmt.Errorf("fetching course %d: %w", opts.CourseID, err)
		}
		if c == nil {
			return nil, nil
		}
		return []canvas.Course{*c}, nil
	}

	state := canvas.Active
	if opts.IncludeCompleted {
		state = canvas.All
	}
	courses, err := src.Courses(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}

type courseAssignments struct {
	assignments []canvas.Assignment
	err         error
}

// fetchAll loads every course's assignments with at most Workers requests in
// flight. The result is indexed like courses so the merge order, and with it
// the tie order of the final sort, does not depend on which request finished
// first.
func fetchAll(ctx context.Context, src Source, courses []canvas.Course) []courseAssignments {
	out := make([]courseAssignments, len(courses))
	sem := make(chan struct{}, Workers)
	var wg sync.WaitGroup
	for i, c := range courses {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			list, err := src.Assignments(ctx, c.ID)
			out[i] = courseAssignments{assignments: list, err: err}
		}()
	}
	wg.Wait()
	return out
}

// Terms splits a query into lowercase terms. The wildcard and an empty
// query both yield nil, which matches everything.
func Terms(query string) []string {
	q := strings.TrimSpace(query)
	if q == "" || q == Wildcard {
		return nil
	}
	return strings.Fields(strings.ToLower(q))
}

// MatchesText reports whether any term is a substring of the assignment's
// name or of its description's plain text, case-insensitively. No terms
// matches everything.
func MatchesText(a canvas.Assignment, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	name := strings.ToLower(a.Name)
	for _, term := range terms {
		if strings.Contains(name, term) {
			return true
		}
	}
	if a.Description == nil {
		return false
	}
	desc := strings.ToLower(htmltext.PlainText(a.Description))
	for _, term := range terms {
		if strings.Contains(desc, term) {
			return true
		}
	}
	return false
}

// SortByDue orders matches by due date ascending. Assignments without a
// readable due date sort last; ties keep their existing order.
func SortByDue(matches []Match) {
	slices.SortStableFunc(matches, func(a, b Match) int {
		ta, oka := dueTime(a.DueAt)
		tb, okb := dueTime(b.DueAt)
		switch {
		case !oka && !okb:
			return 0
		case !oka:
			return 1
		case !okb:
			return -1
		default:
			return ta.Compare(tb)
		}
	})
}

func dueTime(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	return dates.Parse(*s)
}
