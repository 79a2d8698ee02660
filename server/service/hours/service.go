// Package hours implements the business-hours pipeline: parsing clock and
// day tokens, validating intervals against the stored schedule, splitting
// midnight-crossing ranges into per-day rows, and compacting adjacent
// intervals after an import.
//
// All times are naive seconds of the day in [0, 86400]; 86400 is the
// exclusive "exactly at next midnight" bound. Days are 1-7 with Monday=1.
package hours

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dinedex/dinedex/store"
)

// Service carries out schedule writes through the store.
type Service struct {
	store *store.Store
}

// NewService creates a new hours service.
func NewService(store *store.Store) *Service {
	return &Service{store: store}
}

// CreateMultiple writes one open interval for every day in days. A range
// whose closesAt is numerically <= opensAt crosses midnight: each day gets
// a row until 24:00 plus a continuation row on the following calendar day
// from 00:00, except when closesAt is exactly 0 (closing on the stroke of
// midnight leaves nothing to carry over, and a (0,0) row would break the
// strict opens < closes invariant).
//
// All writes of one call happen in a single transaction; any validation
// failure rolls back every row written by this call.
func (s *Service) CreateMultiple(ctx context.Context, restaurantID int32, days []int32, opensAt, closesAt int32) error {
	if opensAt < 0 || opensAt > store.SecondsPerDay-1 {
		return &RangeError{Param: "opensAt", Value: opensAt, Min: 0, Max: store.SecondsPerDay - 1}
	}
	// closesAt 0 is admitted as the degenerate "closes on the stroke of
	// midnight" input; it takes the overflow path below and emits no
	// continuation row.
	if closesAt < 0 || closesAt > store.SecondsPerDay {
		return &RangeError{Param: "closesAt", Value: closesAt, Min: 0, Max: store.SecondsPerDay}
	}
	for _, day := range days {
		if day < store.DayMin || day > store.DayMax {
			return &RangeError{Param: "day", Value: day, Min: store.DayMin, Max: store.DayMax}
		}
	}

	return s.store.RunInTransaction(ctx, func(ctx context.Context, tx *store.Store) error {
		for _, day := range days {
			if closesAt > opensAt {
				if err := s.createWithValidation(ctx, tx, &store.BusinessHour{
					RestaurantID: restaurantID,
					Day:          day,
					Opens:        opensAt,
					Closes:       closesAt,
				}); err != nil {
					return err
				}
				continue
			}

			// Overflow past midnight: today until 24:00, remainder tomorrow.
			if err := s.createWithValidation(ctx, tx, &store.BusinessHour{
				RestaurantID: restaurantID,
				Day:          day,
				Opens:        opensAt,
				Closes:       store.SecondsPerDay,
			}); err != nil {
				return err
			}

			if closesAt == 0 {
				// Closes exactly at midnight, nothing carries over.
				continue
			}

			tomorrow := day%7 + 1
			if err := s.createWithValidation(ctx, tx, &store.BusinessHour{
				RestaurantID: restaurantID,
				Day:          tomorrow,
				Opens:        0,
				Closes:       closesAt,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// createWithValidation validates one interval against the rows already
// visible in the transaction, then persists it. Validation and save are
// interleaved per record so sibling rows written earlier in the same batch
// take part in the overlap check.
func (s *Service) createWithValidation(ctx context.Context, tx *store.Store, create *store.BusinessHour) error {
	if err := s.validate(ctx, tx, create); err != nil {
		return err
	}
	if _, err := tx.CreateBusinessHour(ctx, create); err != nil {
		return fmt.Errorf("failed to save business hour: %w", err)
	}
	return nil
}

// validate checks structural bounds, interval ordering and overlap against
// the stored schedule for (restaurant, day). It performs no writes.
func (s *Service) validate(ctx context.Context, tx *store.Store, check *store.BusinessHour) error {
	if check.Day < store.DayMin || check.Day > store.DayMax {
		return &ValidationError{Field: "day", Message: "must be between 1 and 7"}
	}
	if check.Opens < 0 || check.Opens > store.SecondsPerDay {
		return &ValidationError{Field: "opens", Message: "must be between 0 and 86400"}
	}
	if check.Closes < 0 || check.Closes > store.SecondsPerDay {
		return &ValidationError{Field: "closes", Message: "must be between 0 and 86400"}
	}

	if check.Opens >= check.Closes {
		return &ValidationError{Field: FieldInterval, Message: "the opening time must be before the closing time"}
	}

	existing, err := tx.ListBusinessHours(ctx, &store.FindBusinessHour{
		RestaurantID: &check.RestaurantID,
		Day:          &check.Day,
	})
	if err != nil {
		return fmt.Errorf("failed to list business hours: %w", err)
	}

	// Two valid intervals are disjoint exactly when one starts after the
	// other ends.
	for _, other := range existing {
		if other.Opens >= check.Closes || other.Closes <= check.Opens {
			continue
		}
		return &ValidationError{Field: FieldOverlap, Message: "the business hours overlap with other business hours"}
	}

	return nil
}

// MergeAdjacent coalesces chronologically back-to-back same-day intervals
// (previous closes == next opens) into single rows. It reports whether any
// merge was performed; when nothing merges the store is left untouched,
// which also makes the pass idempotent.
func (s *Service) MergeAdjacent(ctx context.Context, restaurantID int32) (bool, error) {
	businessHours, err := s.store.ListBusinessHours(ctx, &store.FindBusinessHour{
		RestaurantID: &restaurantID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to list business hours: %w", err)
	}

	var toDelete []*store.BusinessHour
	var merged []*store.BusinessHour
	var last *store.BusinessHour

	for _, businessHour := range businessHours {
		if last == nil {
			last = businessHour
			continue
		}

		if last.Day == businessHour.Day && last.Closes == businessHour.Opens {
			last.Closes = businessHour.Closes
			toDelete = append(toDelete, businessHour)
		} else {
			merged = append(merged, last)
			last = businessHour
		}
	}
	if last != nil {
		merged = append(merged, last)
	}

	if len(toDelete) == 0 {
		return false, nil
	}

	err = s.store.RunInTransaction(ctx, func(ctx context.Context, tx *store.Store) error {
		for _, businessHour := range toDelete {
			if err := tx.DeleteBusinessHour(ctx, &store.DeleteBusinessHour{ID: businessHour.ID}); err != nil {
				return fmt.Errorf("failed to delete absorbed business hour: %w", err)
			}
		}
		for _, businessHour := range merged {
			if err := tx.UpdateBusinessHour(ctx, &store.UpdateBusinessHour{
				ID:     businessHour.ID,
				Closes: &businessHour.Closes,
			}); err != nil {
				return fmt.Errorf("failed to save merged business hour: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	slog.Debug("merged adjacent business hours",
		slog.Int("restaurant_id", int(restaurantID)),
		slog.Int("absorbed", len(toDelete)))
	return true, nil
}
