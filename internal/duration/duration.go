// Package duration parses retention periods such as "30d" for
// "canvas-mcp audit vacuum --older-than".
//
// Days, weeks and months are accepted alongside anything time.ParseDuration
// understands, so "90d" and "36h" both work.
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Day is 24 hours. A month is counted as 30 days.
const Day = 24 * time.Hour

// ErrInvalid is returned for strings that are not a positive duration.
var ErrInvalid = errors.New("invalid duration")

var calendar = regexp.MustCompile(`^(\d+)([dwm])$`)

// Parse parses s as Nd (days), Nw (weeks), Nm (months of 30 days) or a Go
// duration. The result must be greater than zero.
func Parse(s string) (time.Duration, error) {
	if m := calendar.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
		}
		var d time.Duration
		switch m[2] {
		case "d":
			d = time.Duration(n) * Day
		case "w":
			d = time.Duration(n) * 7 * Day
		case "m":
			d = time.Duration(n) * 30 * Day
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q must be greater than zero", ErrInvalid, s)
		}
		return d, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use 7d, 4w, 3m or a Go duration like 36h)", ErrInvalid, s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be greater than zero", ErrInvalid, s)
	}
	return d, nil
}
