package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned courses and assignments. Courses listed in fail
// return an error from Assignments.
type fakeSource struct {
	mu          sync.Mutex
	courses     []canvas.Course
	assignments map[int][]canvas.Assignment
	fail        map[int]error
	listErr     error
	states      []canvas.EnrollmentState
}

func (f *fakeSource) Courses(_ context.Context, state canvas.EnrollmentState) ([]canvas.Course, error) {
	f.mu.Lock()
	f.states = append(f.states, state)
	f.mu.Unlock()
	return f.courses, f.listErr
}

func (f *fakeSource) Course(_ context.Context, id int) (*canvas.Course, error) {
	for _, c := range f.courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, &canvas.APIError{StatusCode: 404, Body: `{"message":"not found"}`}
}

func (f *fakeSource) Assignments(_ context.Context, id int) ([]canvas.Assignment, error) {
	if err, ok := f.fail[id]; ok {
		return nil, err
	}
	return f.assignments[id], nil
}

func str(s string) *string { return &s }

func names(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}

func TestRun_CourseFailureIsolated(t *testing.T) {
	src := &fakeSource{
		courses: []canvas.Course{{ID: 1, Name: "Biology"}, {ID: 2, Name: "Chemistry"}},
		assignments: map[int][]canvas.Assignment{
			1: {{ID: 10, Name: "Lab report"}},
		},
		fail: map[int]error{2: &canvas.APIError{StatusCode: 403, Body: "forbidden"}},
	}

	res, err := Run(context.Background(), src, Options{Query: "lab"})
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "Lab report", res.Matches[0].Name)
	assert.Equal(t, 1, res.Matches[0].CourseID)
	assert.Equal(t, "Biology", res.Matches[0].CourseName)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, 2, res.Failures[0].CourseID)
	assert.Equal(t, 403, canvas.StatusCode(res.Failures[0].Err))
}

func TestRun_SortByDue(t *testing.T) {
	src := &fakeSource{
		courses: []canvas.Course{{ID: 1, Name: "History"}},
		assignments: map[int][]canvas.Assignment{
			1: {
				{ID: 1, Name: "March", DueAt: str("2024-03-01T12:00:00Z")},
				{ID: 2, Name: "Undated"},
				{ID: 3, Name: "January", DueAt: str("2024-01-01T12:00:00Z")},
			},
		},
	}

	res, err := Run(context.Background(), src, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"January", "March", "Undated"}, names(res.Matches))
}

func TestRun_StableAcrossCourses(t *testing.T) {
	due := str("2024-05-01T10:00:00Z")
	var courses []canvas.Course
	assignments := map[int][]canvas.Assignment{}
	for id := 1; id <= 9; id++ {
		courses = append(courses, canvas.Course{ID: id, Name: "C"})
		assignments[id] = []canvas.Assignment{
			{ID: id * 10, Name: string(rune('a' + id - 1)), DueAt: due},
			{ID: id*10 + 1, Name: string(rune('A' + id - 1))},
		}
	}
	src := &fakeSource{courses: courses, assignments: assignments}

	res, err := Run(context.Background(), src, Options{Query: Wildcard})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a", "b", "c", "d", "e", "f", "g", "h", "i",
		"A", "B", "C", "D", "E", "F", "G", "H", "I",
	}, names(res.Matches), "ties must keep course order")
}

func TestRun_TextFilter(t *testing.T) {
	src := &fakeSource{
		courses: []canvas.Course{{ID: 1, Name: "English"}},
		assignments: map[int][]canvas.Assignment{
			1: {
				{ID: 1, Name: "Persuasive Essay"},
				{ID: 2, Name: "Reading log", Description: str("<p>Summarise the <b>POEM</b></p>")},
				{ID: 3, Name: "Vocabulary quiz", Description: str("<p>Chapter 4</p>")},
			},
		},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"essay", []string{"Persuasive Essay"}},
		{"ESSAY", []string{"Persuasive Essay"}},
		{"poem", []string{"Reading log"}},
		{"essay poem", []string{"Persuasive Essay", "Reading log"}},
		{"  quiz  ", []string{"Vocabulary quiz"}},
		{"nothing", nil},
		{"", []string{"Persuasive Essay", "Reading log", "Vocabulary quiz"}},
		{"*", []string{"Persuasive Essay", "Reading log", "Vocabulary quiz"}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			res, err := Run(context.Background(), src, Options{Query: tc.query})
			require.NoError(t, err)
			if tc.want == nil {
				assert.Empty(t, res.Matches)
				assert.Equal(t, NoMatches, res.Empty())
				return
			}
			assert.Equal(t, tc.want, names(res.Matches))
		})
	}
}

func TestRun_DateFilter(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("TST", -5*3600)
	t.Cleanup(func() { time.Local = orig })

	src := &fakeSource{
		courses: []canvas.Course{{ID: 1, Name: "Math"}},
		assignments: map[int][]canvas.Assignment{
			1: {
				{ID: 1, Name: "early", DueAt: str("2024-02-01T12:00:00Z")},
				// 04:59Z on the 11th is 23:59 on the 10th at UTC-5.
				{ID: 2, Name: "last minute", DueAt: str("2024-03-11T04:59:59Z")},
				{ID: 3, Name: "late", DueAt: str("2024-04-01T12:00:00Z")},
				{ID: 4, Name: "undated"},
				{ID: 5, Name: "garbled", DueAt: str("someday")},
			},
		},
	}

	res, err := Run(context.Background(), src, Options{DueAfter: "2024-03-01", DueBefore: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"last minute", "undated", "garbled"}, names(res.Matches))
}

func TestRun_CourseSelection(t *testing.T) {
	src := &fakeSource{
		courses: []canvas.Course{{ID: 1, Name: "One"}, {ID: 2, Name: "Two"}},
		assignments: map[int][]canvas.Assignment{
			1: {{ID: 1, Name: "first"}},
			2: {{ID: 2, Name: "second"}},
		},
	}

	t.Run("single course", func(t *testing.T) {
		res, err := Run(context.Background(), src, Options{CourseID: 2})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Courses)
		assert.Equal(t, []string{"second"}, names(res.Matches))
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := Run(context.Background(), src, Options{CourseID: 99})
		assert.Equal(t, 404, canvas.StatusCode(err))
	})

	t.Run("enrollment state", func(t *testing.T) {
		src.states = nil
		_, err := Run(context.Background(), src, Options{})
		require.NoError(t, err)
		_, err = Run(context.Background(), src, Options{IncludeCompleted: true})
		require.NoError(t, err)
		assert.Equal(t, []canvas.EnrollmentState{canvas.Active, canvas.All}, src.states)
	})
}

func TestRun_Empty(t *testing.T) {
	t.Run("no courses", func(t *testing.T) {
		res, err := Run(context.Background(), &fakeSource{}, Options{})
		require.NoError(t, err)
		assert.Equal(t, NoCourses, res.Empty())
	})

	t.Run("list failure is an error", func(t *testing.T) {
		_, err := Run(context.Background(), &fakeSource{listErr: errors.New("boom")}, Options{})
		assert.ErrorContains(t, err, "listing courses: boom")
	})
}

func TestTerms(t *testing.T) {
	assert.Nil(t, Terms(""))
	assert.Nil(t, Terms("   "))
	assert.Nil(t, Terms("*"))
	assert.Equal(t, []string{"lab", "report"}, Terms("  Lab\tREPORT "))
}
