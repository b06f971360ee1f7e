// log_query.go reads back and prunes the audit log for the "audit" command.

package log

import (
	"database/sql"
	"errors"
	"time"
)

// ErrClosed is returned by queries when the logger has not been opened.
var ErrClosed = errors.New("audit log is not open")

// Record is a stored log entry as read back from the database.
type Record struct {
	ID         int64     `json:"id"`
	Start      time.Time `json:"start"`
	Duration   int64     `json:"duration_seconds"`
	Source     string    `json:"source"`
	Action     string    `json:"action"`
	RequestID  string    `json:"request_id,omitempty"`
	Course     int       `json:"course_id,omitempty"`
	Assignment int       `json:"assignment_id,omitempty"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
}

func current() (*Logger, error) {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return nil, ErrClosed
	}
	return global, nil
}

// Recent returns up to limit entries, newest first. A non-empty source
// restricts the result to that source ("cli:search", "mcp:get_assignment").
func Recent(limit int, source string) ([]Record, error) {
	l, err := current()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.Query(`
		SELECT id, start, end, source, action, request_id,
		       course_id, assignment_id, success, error
		FROM log
		WHERE (? = '' OR source = ?)
		ORDER BY start DESC, id DESC
		LIMIT ?`, source, source, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r              Record
			start, end     int64
			reqID, errText sql.NullString
			course, assign sql.NullInt64
			success        int
		)
		if err := rows.Scan(&r.ID, &start, &end, &r.Source, &r.Action, &reqID,
			&course, &assign, &success, &errText); err != nil {
			return nil, err
		}
		r.Start = time.Unix(start, 0)
		r.Duration = end - start
		r.RequestID = reqID.String
		r.Course = int(course.Int64)
		r.Assignment = int(assign.Int64)
		r.Success = success == 1
		r.Error = errText.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountBefore reports how many entries started before cutoff.
func CountBefore(cutoff time.Time) (int64, error) {
	l, err := current()
	if err != nil {
		return 0, err
	}
	var n int64
	err = l.db.QueryRow(`SELECT COUNT(*) FROM log WHERE start < ?`, cutoff.Unix()).Scan(&n)
	return n, err
}

// PruneBefore deletes entries that started before cutoff and returns how
// many were removed.
func PruneBefore(cutoff time.Time) (int64, error) {
	l, err := current()
	if err != nil {
		return 0, err
	}
	res, err := l.db.Exec(`DELETE FROM log WHERE start < ?`, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
