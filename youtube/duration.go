package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

var durationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration decodes an ISO 8601 duration from the videos endpoint
// (e.g. "PT1H30M15S", "PT12M5S", "PT45S") into total seconds.
// Any component may be absent and defaults to zero. An unparseable notation
// yields zero seconds rather than an error; the API occasionally returns
// unusual values (e.g. "P0D" for live streams) and dropping to zero keeps
// those videos classifiable.
func ParseDuration(notation string) int {
	m := durationRegex.FindStringSubmatch(notation)
	if m == nil {
		return 0
	}

	hours := atoiDefault(m[1])
	minutes := atoiDefault(m[2])
	seconds := atoiDefault(m[3])

	return hours*3600 + minutes*60 + seconds
}

// FormatDuration encodes total seconds as a clock string: "M:SS" under one
// hour, "H:MM:SS" otherwise. Negative inputs format as "0:00".
func FormatDuration(totalSeconds int) string {
	if totalSeconds < 0 {
		return "0:00"
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
