package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dinedex/dinedex/server/service/hours"
	"github.com/dinedex/dinedex/store"
)

// The 10-column format:
// name, uid, cuisine, opens, closes, days, price, rating, location, description
const fullColumnCount = 10

// fullImporter handles the tabular format with explicit 24-hour clock and
// day-list columns.
type fullImporter struct{}

func (imp *fullImporter) importRow(ctx context.Context, tx *store.Store, columns []string) (*store.Restaurant, error) {
	restaurant := &store.Restaurant{
		Name: column(columns, 0),
		UID:  column(columns, 1),
	}
	if v := column(columns, 2); v != "" {
		restaurant.Cuisine = &v
	}
	if v := column(columns, 8); v != "" {
		restaurant.Location = &v
	}
	if v := column(columns, 9); v != "" {
		restaurant.Description = &v
	}

	var err error
	if restaurant.Price, err = parseScore("price", column(columns, 6)); err != nil {
		return nil, err
	}
	if restaurant.Rating, err = parseScore("rating", column(columns, 7)); err != nil {
		return nil, err
	}

	if err := ValidateRestaurant(restaurant); err != nil {
		return nil, err
	}
	if _, err := tx.CreateRestaurant(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to save restaurant: %w", err)
	}

	if err := imp.importBusinessHours(ctx, tx, restaurant,
		column(columns, 3), column(columns, 4), column(columns, 5)); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// importBusinessHours converts the opens/closes clock columns (e.g.
// "09:00:00", "17:00:00") and the day list (e.g. "Mo,Tu,We,Fr,Sa") into
// one CreateMultiple call covering every listed day.
func (imp *fullImporter) importBusinessHours(ctx context.Context, tx *store.Store, restaurant *store.Restaurant, opens, closes, daysOpen string) error {
	opensAt, err := hours.ParseClock24(opens)
	if err != nil {
		return err
	}
	closesAt, err := hours.ParseClock24(closes)
	if err != nil {
		return err
	}

	// "00:00:00" as a closing time means end of day, not start of it.
	if closesAt == 0 {
		closesAt = store.SecondsPerDay
	}

	var days []int32
	for _, token := range strings.Split(daysOpen, ",") {
		day, ok := hours.DayToInt(strings.TrimSpace(token))
		if !ok {
			return fmt.Errorf("%w: unrecognized day %q", errInvalidDayName, token)
		}
		days = append(days, day)
	}

	return hours.NewService(tx).CreateMultiple(ctx, restaurant.ID, days, opensAt, closesAt)
}

// parseScore parses an optional 1-5 integer column.
func parseScore(field, value string) (*int32, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, &hours.ValidationError{Field: field, Message: "must be an integer"}
	}
	score := int32(n)
	return &score, nil
}
