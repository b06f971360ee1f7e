package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	t.Run("all assignments with failure", func(t *testing.T) {
		out := env.run("search")
		env.contains(out, "Found 2 assignments across 1 course:")
		env.contains(out, "1. Lab Report")
		env.contains(out, "2. Cell Essay")
		env.contains(out, "Could not search 1 course:")
		env.contains(out, "- Chemistry (ID: 2)")
	})

	t.Run("query joins arguments", func(t *testing.T) {
		out := env.run("search", "quantum", "MITOCHONDRIA", "--course", "1")
		env.contains(out, "Found 1 assignment across 1 course:")
		env.contains(out, "Cell Essay")
		assert.NotContains(t, out, "Lab Report")
	})

	t.Run("date range keeps undated", func(t *testing.T) {
		out := env.run("search", "--course", "1", "--after", "2030-01-01")
		env.contains(out, "Cell Essay")
		assert.NotContains(t, out, "Lab Report")
	})

	t.Run("no matches", func(t *testing.T) {
		out := env.run("search", "quantum", "--course", "1")
		env.contains(out, "No assignments found matching your criteria.")
	})

	t.Run("json", func(t *testing.T) {
		out := env.run("search", "-o", "json")
		var res struct {
			Courses int `json:"courses"`
			Matches []struct {
				ID         int    `json:"id"`
				CourseName string `json:"course_name"`
			} `json:"matches"`
			Failures []struct {
				CourseID int    `json:"course_id"`
				Error    string `json:"error"`
			} `json:"failures"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 2, res.Courses)
		require.Len(t, res.Matches, 2)
		assert.Equal(t, 10, res.Matches[0].ID)
		assert.Equal(t, "Biology 101", res.Matches[0].CourseName)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, 2, res.Failures[0].CourseID)
		assert.Contains(t, res.Failures[0].Error, "403")
	})

	t.Run("json stdout stays clean", func(t *testing.T) {
		stdout, stderr, err := env.exec("search", "-o", "json")
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(stdout)), "stdout: %s", stdout)
		assert.Empty(t, stderr)
	})

	t.Run("verbose logs skipped courses to stderr", func(t *testing.T) {
		stdout, stderr, err := env.exec("search", "-v")
		require.NoError(t, err)
		env.contains(stdout, "Could not search 1 course:")
		env.contains(stderr, `level=WARN msg="skipping course in search"`)
		env.contains(stderr, "course_id=2")
		assert.NotContains(t, stdout, "level=WARN")
	})
}
