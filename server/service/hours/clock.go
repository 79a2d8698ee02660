package hours

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	clock12Pattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s+(am|pm)$`)
	clock24Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)
)

// ParseClock12 converts a 12-hour clock string ("h:mm am" through
// "hh:mm pm", minutes optional, am/pm case-insensitive) to seconds of the
// day in [0, 86340]. 12 am maps to midnight, 12 pm to noon.
func ParseClock12(text string) (int32, error) {
	matches := clock12Pattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(text)))
	if matches == nil {
		return 0, &FormatError{Input: text, Reason: "expected h:mm am/pm"}
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes := 0
	if matches[2] != "" {
		minutes, _ = strconv.Atoi(matches[2])
	}

	if hours < 1 || hours > 12 {
		return 0, &FormatError{Input: text, Reason: "hour out of range"}
	}
	if minutes > 59 {
		return 0, &FormatError{Input: text, Reason: "minute out of range"}
	}

	if hours == 12 {
		hours = 0
	}
	if matches[3] == "pm" {
		hours += 12
	}

	return int32(hours*3600 + minutes*60), nil
}

// ParseClock24 converts a 24-hour "HH:MM:SS" clock string to seconds of
// the day in [0, 86399].
func ParseClock24(text string) (int32, error) {
	matches := clock24Pattern.FindStringSubmatch(strings.TrimSpace(text))
	if matches == nil {
		return 0, &FormatError{Input: text, Reason: "expected HH:MM:SS"}
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])

	if hours > 23 {
		return 0, &FormatError{Input: text, Reason: "hour out of range"}
	}
	if minutes > 59 {
		return 0, &FormatError{Input: text, Reason: "minute out of range"}
	}
	if seconds > 59 {
		return 0, &FormatError{Input: text, Reason: "second out of range"}
	}

	return int32(hours*3600 + minutes*60 + seconds), nil
}

var dayNames = map[string]int32{
	"Mo": 1, "Mon": 1, "Monday": 1,
	"Tu": 2, "Tue": 2, "Tuesday": 2,
	"We": 3, "Wed": 3, "Wednesday": 3,
	"Th": 4, "Thu": 4, "Thursday": 4,
	"Fr": 5, "Fri": 5, "Friday": 5,
	"Sa": 6, "Sat": 6, "Saturday": 6,
	"Su": 7, "Sun": 7, "Sunday": 7,
}

// DayToInt converts an English day name to its 1-7 integer (Monday=1).
// Two-letter, three-letter and full names are accepted, case-sensitive.
func DayToInt(day string) (int32, bool) {
	n, ok := dayNames[day]
	return n, ok
}
