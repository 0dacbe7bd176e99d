package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultTimeout is the conflict window, in minutes, used when none is set.
	DefaultTimeout = 15
)

var (
	timeoutPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]*)\s*$`)
	minuteUnits    = map[string]struct{}{
		"":        {},
		"m":       {},
		"min":     {},
		"mins":    {},
		"minute":  {},
		"minutes": {},
	}
	allowedTimeouts = []int{5, 10, 15, 20, 25, 30}
)

// Timeouts lists the selectable conflict windows in minutes.
func Timeouts() []int {
	out := make([]int, len(allowedTimeouts))
	copy(out, allowedTimeouts)
	return out
}

// ValidTimeout reports whether minutes is one of the selectable windows.
func ValidTimeout(minutes int) bool {
	for _, v := range allowedTimeouts {
		if v == minutes {
			return true
		}
	}
	return false
}

// ParseTimeout parses a conflict window such as "15", "15m" or "20 minutes".
// An empty input yields DefaultTimeout.
func ParseTimeout(input string) (int, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return DefaultTimeout, nil
	}

	matches := timeoutPattern.FindStringSubmatch(trimmed)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid timeout %q", input)
	}
	if _, ok := minuteUnits[matches[2]]; !ok {
		return 0, fmt.Errorf("unsupported timeout unit %q", matches[2])
	}
	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid timeout value %q: %w", matches[1], err)
	}
	if !ValidTimeout(value) {
		return 0, fmt.Errorf("timeout must be one of %v minutes, got %d", allowedTimeouts, value)
	}
	return value, nil
}

// FormatTimeout renders a window the way the timeout picker labels it.
func FormatTimeout(minutes int) string {
	return strconv.Itoa(minutes) + " min"
}
