package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
)

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// ParseClock extracts the first H:MM or HH:MM value from label and returns
// it as minutes since midnight. Values are not range checked, so "99:99"
// yields 6039; a bad label should show up as a bad time, not a corrected one.
func ParseClock(label string) (int, bool) {
	m := clockPattern.FindStringSubmatch(label)
	if len(m) != 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// FormatClock renders minutes since midnight as H:MM.
func FormatClock(minutes int) string {
	if minutes < 0 {
		return "-" + FormatClock(-minutes)
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
