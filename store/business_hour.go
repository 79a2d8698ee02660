package store

import (
	"context"
	"fmt"
)

// Day/second domain bounds shared by the schedule pipeline.
const (
	DayMin = 1
	DayMax = 7

	// SecondsPerDay is the exclusive upper bound of an interval;
	// a closes value of SecondsPerDay means "exactly at next midnight".
	SecondsPerDay = 86400
)

// BusinessHour is one contiguous open interval within a single calendar day.
// Day is 1-7 (Monday=1), opens/closes are seconds since local midnight with
// opens < closes always holding for stored rows.
type BusinessHour struct {
	ID           int32
	RestaurantID int32
	Day          int32
	Opens        int32
	Closes       int32
}

// FindBusinessHour is the find condition for business hour.
// Results are always ordered by (day ASC, opens ASC).
type FindBusinessHour struct {
	ID           *int32
	RestaurantID *int32
	Day          *int32
}

// UpdateBusinessHour is the update request for business hour.
type UpdateBusinessHour struct {
	ID     int32
	Opens  *int32
	Closes *int32
}

// DeleteBusinessHour is the delete request for business hour.
type DeleteBusinessHour struct {
	ID int32
}

// String renders the interval for logs, e.g. "Mon 09:00-17:00".
func (b *BusinessHour) String() string {
	names := [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	day := "???"
	if b.Day >= DayMin && b.Day <= DayMax {
		day = names[b.Day-1]
	}
	return fmt.Sprintf("%s %02d:%02d-%02d:%02d", day,
		b.Opens/3600, b.Opens%3600/60,
		b.Closes/3600, b.Closes%3600/60)
}

// CreateBusinessHour creates a new business hour row.
func (s *Store) CreateBusinessHour(ctx context.Context, create *BusinessHour) (*BusinessHour, error) {
	return s.driver.CreateBusinessHour(ctx, create)
}

// ListBusinessHours lists business hours with filter.
func (s *Store) ListBusinessHours(ctx context.Context, find *FindBusinessHour) ([]*BusinessHour, error) {
	return s.driver.ListBusinessHours(ctx, find)
}

// UpdateBusinessHour updates a business hour.
func (s *Store) UpdateBusinessHour(ctx context.Context, update *UpdateBusinessHour) error {
	return s.driver.UpdateBusinessHour(ctx, update)
}

// DeleteBusinessHour deletes a business hour.
func (s *Store) DeleteBusinessHour(ctx context.Context, delete *DeleteBusinessHour) error {
	return s.driver.DeleteBusinessHour(ctx, delete)
}
