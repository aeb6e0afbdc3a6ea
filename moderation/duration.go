package moderation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// durationPattern matches compound durations like "1d2h30m". Units must
// appear in d/h/m/s order, each at most once.
var durationPattern = regexp.MustCompile(`^(?:(\d+)d)?(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

var unitSeconds = [4]int64{86400, 3600, 60, 1}

// ParseDuration parses a compound duration string ("1h", "2h30m", "1d2h30m")
// into a duration of whole seconds. A bare number with no unit is rejected,
// as is anything that overflows an int64 second count.
func ParseDuration(input string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	groups := durationPattern.FindStringSubmatch(s)
	if groups == nil {
		return 0, fmt.Errorf("invalid duration %q: expected forms like 1h, 30m, 1d2h30m", input)
	}

	var total int64
	matched := false
	for i, g := range groups[1:] {
		if g == "" {
			continue
		}
		matched = true
		n, err := strconv.ParseInt(g, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: component %s out of range", input, g)
		}
		unit := unitSeconds[i]
		if n > (1<<63-1)/unit {
			return 0, fmt.Errorf("invalid duration %q: component %s out of range", input, g)
		}
		part := n * unit
		if total > (1<<63-1)-part {
			return 0, fmt.Errorf("invalid duration %q: total out of range", input)
		}
		total += part
	}
	if !matched {
		return 0, fmt.Errorf("invalid duration %q: no units found", input)
	}
	if total == 0 {
		return 0, fmt.Errorf("invalid duration %q: must be positive", input)
	}
	if total > (1<<63-1)/int64(time.Second) {
		return 0, fmt.Errorf("invalid duration %q: total out of range", input)
	}

	return time.Duration(total) * time.Second, nil
}
