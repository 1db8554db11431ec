package analytics

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	hoursToken   = regexp.MustCompile(`(\d+)\s*h`)
	minutesToken = regexp.MustCompile(`(\d+)\s*m`)
	bareDigits   = regexp.MustCompile(`\d+`)
)

// ParseResponseMinutes converts a free-text elapsed-time string such as
// "20h 33m", "45m" or "2h" into whole minutes. Hours and minutes tokens are
// additive; only the first occurrence of each token kind is used. When
// neither token is present, the first run of digits is taken as a raw minute
// count. Unparseable input degrades to 0, never an error.
func ParseResponseMinutes(text string) int {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0
	}

	total := 0
	matched := false
	if m := hoursToken.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 60
		matched = true
	}
	if m := minutesToken.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n
		matched = true
	}
	if matched {
		return total
	}

	if d := bareDigits.FindString(s); d != "" {
		n, _ := strconv.Atoi(d)
		return n
	}
	return 0
}
