package importer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dinedex/dinedex/server/service/hours"
	"github.com/dinedex/dinedex/store"
)

// The 2-column format: name, free-text weekly schedule.
const basicColumnCount = 2

var (
	errInvalidScheduleFormat = errors.New("invalid business hours format")
	errInvalidDayFormat      = errors.New("invalid day format")
	errInvalidDayName        = errors.New("invalid day name")
	errInvalidDayRange       = errors.New("invalid day range")
	errInvalidTimeFormat     = errors.New("invalid time format")
)

var (
	// Splits a clause into a day-spec prefix and a time-spec suffix at the
	// first digit.
	clausePattern = regexp.MustCompile(`^(.+?)\s+(\d.*)$`)
	// A single three-letter day or an inclusive day range.
	dayTokenPattern = regexp.MustCompile(`^([a-zA-Z]{3})(?:-([a-zA-Z]{3}))?$`)
	// A 12-hour clock reading inside a time spec.
	timePattern = regexp.MustCompile(`(?i)\d{1,2}(?::\d{2})? (?:am|pm)`)
)

// basicImporter handles the 2-column format whose schedule column reads
// like "Mon-Thu, Sun 11:30 am - 9 pm / Fri-Sat 11:30 am - 3:30 am".
type basicImporter struct{}

func (imp *basicImporter) importRow(ctx context.Context, tx *store.Store, columns []string) (*store.Restaurant, error) {
	name := column(columns, 0)
	restaurant := &store.Restaurant{
		Name: name,
		UID:  Slugify(name),
	}

	if err := ValidateRestaurant(restaurant); err != nil {
		return nil, err
	}
	if _, err := tx.CreateRestaurant(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to save restaurant: %w", err)
	}

	if err := imp.importBusinessHours(ctx, tx, restaurant, column(columns, 1)); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// importBusinessHours splits the schedule on "/" into independent clauses
// and feeds each clause's day set and time range to CreateMultiple.
func (imp *basicImporter) importBusinessHours(ctx context.Context, tx *store.Store, restaurant *store.Restaurant, input string) error {
	service := hours.NewService(tx)

	for _, part := range strings.Split(input, "/") {
		part = strings.TrimSpace(part)

		matches := clausePattern.FindStringSubmatch(part)
		if matches == nil {
			return fmt.Errorf("%w: %q", errInvalidScheduleFormat, part)
		}

		days, err := processDays(matches[1])
		if err != nil {
			return err
		}
		opensAt, closesAt, err := processTime(matches[2])
		if err != nil {
			return err
		}

		if err := service.CreateMultiple(ctx, restaurant.ID, days, opensAt, closesAt); err != nil {
			return err
		}
	}

	return nil
}

// processDays expands a day spec like "Mon, Wed-Sat" into sorted day
// integers, e.g. [1,3,4,5,6]. Each token is a single 3-letter day or an
// inclusive ascending range.
func processDays(input string) ([]int32, error) {
	var days []int32

	for _, split := range strings.Split(input, ",") {
		split = strings.TrimSpace(split)

		matches := dayTokenPattern.FindStringSubmatch(split)
		if matches == nil {
			return nil, fmt.Errorf("%w: %q", errInvalidDayFormat, split)
		}

		dayStart := matches[1]
		dayEnd := matches[2]
		if dayEnd == "" {
			dayEnd = dayStart
		}

		dayStartInt, startOK := hours.DayToInt(dayStart)
		dayEndInt, endOK := hours.DayToInt(dayEnd)
		if !startOK || !endOK {
			return nil, fmt.Errorf("%w: %q", errInvalidDayName, split)
		}
		if dayStartInt > dayEndInt {
			return nil, fmt.Errorf("%w: %q", errInvalidDayRange, split)
		}

		for day := dayStartInt; day <= dayEndInt; day++ {
			days = append(days, day)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	return days, nil
}

// processTime extracts exactly two 12-hour clock readings from a time
// spec like "11:30 am - 9 pm" and converts them to seconds of the day.
// A midnight end reading is normalized to end-of-day.
func processTime(input string) (int32, int32, error) {
	matches := timePattern.FindAllString(input, -1)
	if len(matches) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", errInvalidTimeFormat, input)
	}

	opensAt, err := hours.ParseClock12(matches[0])
	if err != nil {
		return 0, 0, err
	}
	closesAt, err := hours.ParseClock12(matches[1])
	if err != nil {
		return 0, 0, err
	}

	if closesAt == 0 {
		closesAt = store.SecondsPerDay
	}

	return opensAt, closesAt, nil
}
