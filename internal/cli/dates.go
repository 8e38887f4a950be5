package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daytrack/internal/utils"
)

// ParseDay accepts YYYY-MM-DD or one of "today", "tomorrow", "yesterday",
// relative to today.
func ParseDay(s string, today time.Time, loc *time.Location) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	day, err := utils.ParseDateInLocation(strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return day, nil
}
