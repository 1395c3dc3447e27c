package matching

import (
	"strconv"
	"strings"
	"unicode"

	"datenight/internal/domain"
)

// ClassifyDuration maps a template's free-text duration ("2-3 hours",
// "45 min", "all day") into a duration class by simple thresholding:
// up to 3 hours is quick, up to 5 is half-day, anything longer is
// full-day. Ranges count their upper bound. Unparseable text yields the
// zero class, which scores nothing for the duration factor.
func ClassifyDuration(s string) domain.DurationClass {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return ""
	}
	if strings.Contains(text, "all day") || strings.Contains(text, "full day") ||
		strings.Contains(text, "whole day") || strings.Contains(text, "overnight") {
		return domain.DurationFullDay
	}
	if strings.Contains(text, "half day") || strings.Contains(text, "half-day") {
		return domain.DurationHalfDay
	}

	hours, ok := maxHours(text)
	if !ok {
		return ""
	}
	switch {
	case hours <= 3:
		return domain.DurationQuick
	case hours <= 5:
		return domain.DurationHalfDay
	default:
		return domain.DurationFullDay
	}
}

// maxHours extracts every number in the text, applies the unit that
// follows it, and returns the largest value in hours.
func maxHours(text string) (float64, bool) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '-' || r == '–' || r == '/' || r == ',' || r == '~' || unicode.IsSpace(r)
	})

	var (
		max     float64
		found   bool
		pending []float64
	)
	flush := func(perUnit float64) {
		for _, n := range pending {
			h := n * perUnit
			if !found || h > max {
				max = h
			}
			found = true
		}
		pending = pending[:0]
	}

	for _, f := range fields {
		num, unit := splitNumUnit(f)
		if num != "" {
			if n, err := strconv.ParseFloat(num, 64); err == nil {
				pending = append(pending, n)
			}
		}
		switch {
		case unit == "":
			continue
		case strings.HasPrefix(unit, "min"), unit == "m":
			flush(1.0 / 60.0)
		case strings.HasPrefix(unit, "hour"), strings.HasPrefix(unit, "hr"), unit == "h":
			flush(1)
		}
	}
	// bare numbers with no unit anywhere read as hours
	flush(1)
	return max, found
}

// splitNumUnit separates a leading number from a trailing unit ("90min"
// -> "90", "min").
func splitNumUnit(f string) (num, unit string) {
	i := 0
	for i < len(f) && (f[i] >= '0' && f[i] <= '9' || f[i] == '.') {
		i++
	}
	return f[:i], f[i:]
}
