package hours

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dinedex/dinedex/store"
	storetest "github.com/dinedex/dinedex/store/test"
)

func newTestService(t *testing.T) (*Service, *store.Store, *store.Restaurant) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	restaurant, err := ts.CreateRestaurant(ctx, &store.Restaurant{UID: "hours-test", Name: "Hours Test"})
	require.NoError(t, err)
	return NewService(ts), ts, restaurant
}

func listHours(t *testing.T, ts *store.Store, restaurantID int32) []*store.BusinessHour {
	list, err := ts.ListBusinessHours(context.Background(), &store.FindBusinessHour{RestaurantID: &restaurantID})
	require.NoError(t, err)
	return list
}

func TestCreateMultipleSameDay(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	err := svc.CreateMultiple(ctx, restaurant.ID, []int32{1, 3, 5}, 32400, 61200)
	require.NoError(t, err)

	list := listHours(t, ts, restaurant.ID)
	require.Len(t, list, 3)
	for i, day := range []int32{1, 3, 5} {
		require.Equal(t, day, list[i].Day)
		require.Equal(t, int32(32400), list[i].Opens)
		require.Equal(t, int32(61200), list[i].Closes)
	}
}

func TestCreateMultipleMidnightOverflow(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	// Friday 10 pm until 1 am Saturday.
	err := svc.CreateMultiple(ctx, restaurant.ID, []int32{5}, 79200, 3600)
	require.NoError(t, err)

	list := listHours(t, ts, restaurant.ID)
	require.Len(t, list, 2)
	require.Equal(t, int32(5), list[0].Day)
	require.Equal(t, int32(79200), list[0].Opens)
	require.Equal(t, int32(86400), list[0].Closes)
	require.Equal(t, int32(6), list[1].Day)
	require.Equal(t, int32(0), list[1].Opens)
	require.Equal(t, int32(3600), list[1].Closes)
}

func TestCreateMultipleOverflowWrapsSundayToMonday(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	err := svc.CreateMultiple(ctx, restaurant.ID, []int32{7}, 79200, 7200)
	require.NoError(t, err)

	list := listHours(t, ts, restaurant.ID)
	require.Len(t, list, 2)
	require.Equal(t, int32(1), list[0].Day)
	require.Equal(t, int32(0), list[0].Opens)
	require.Equal(t, int32(7200), list[0].Closes)
	require.Equal(t, int32(7), list[1].Day)
}

func TestCreateMultipleClosesAtMidnight(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	// Closing on the stroke of midnight produces a single row and no
	// continuation on the next day.
	err := svc.CreateMultiple(ctx, restaurant.ID, []int32{1}, 3600, 0)
	require.NoError(t, err)

	list := listHours(t, ts, restaurant.ID)
	require.Len(t, list, 1)
	require.Equal(t, int32(1), list[0].Day)
	require.Equal(t, int32(3600), list[0].Opens)
	require.Equal(t, int32(86400), list[0].Closes)
}

func TestCreateMultipleRangeErrors(t *testing.T) {
	ctx := context.Background()
	svc, _, restaurant := newTestService(t)

	var rangeErr *RangeError

	err := svc.CreateMultiple(ctx, restaurant.ID, []int32{1}, -1, 3600)
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, "opensAt", rangeErr.Param)

	err = svc.CreateMultiple(ctx, restaurant.ID, []int32{1}, 86400, 3600)
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, "opensAt", rangeErr.Param)

	err = svc.CreateMultiple(ctx, restaurant.ID, []int32{1}, 3600, 86401)
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, "closesAt", rangeErr.Param)

	err = svc.CreateMultiple(ctx, restaurant.ID, []int32{0}, 3600, 7200)
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, "day", rangeErr.Param)

	err = svc.CreateMultiple(ctx, restaurant.ID, []int32{8}, 3600, 7200)
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, "day", rangeErr.Param)
}

func TestCreateMultipleOverlapRollsBack(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	err := svc.CreateMultiple(ctx, restaurant.ID, []int32{2}, 32400, 61200)
	require.NoError(t, err)

	// Monday is fine but Tuesday collides, so neither row may survive.
	err = svc.CreateMultiple(ctx, restaurant.ID, []int32{1, 2}, 36000, 43200)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, FieldOverlap, validationErr.Field)

	list := listHours(t, ts, restaurant.ID)
	require.Len(t, list, 1)
	require.Equal(t, int32(2), list[0].Day)
}

func TestCreateMultipleAdjacentIsNotOverlap(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	require.NoError(t, svc.CreateMultiple(ctx, restaurant.ID, []int32{1}, 32400, 43200))
	require.NoError(t, svc.CreateMultiple(ctx, restaurant.ID, []int32{1}, 43200, 61200))

	require.Len(t, listHours(t, ts, restaurant.ID), 2)
}

func TestMergeAdjacent(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	// A Sunday range spilling into Monday, then a Monday range starting
	// right where the spill ends.
	require.NoError(t, svc.CreateMultiple(ctx, restaurant.ID, []int32{7}, 79200, 43200))
	require.NoError(t, svc.CreateMultiple(ctx, restaurant.ID, []int32{1}, 43200, 61200))

	mergedAny, err := svc.MergeAdjacent(ctx, restaurant.ID)
	require.NoError(t, err)
	require.True(t, mergedAny)

	list := listHours(t, ts, restaurant.ID)
	require.Len(t, list, 2)
	require.Equal(t, int32(1), list[0].Day)
	require.Equal(t, int32(0), list[0].Opens)
	require.Equal(t, int32(61200), list[0].Closes)
	require.Equal(t, int32(7), list[1].Day)
	require.Equal(t, int32(79200), list[1].Opens)
	require.Equal(t, int32(86400), list[1].Closes)

	// A second pass finds nothing to do.
	mergedAny, err = svc.MergeAdjacent(ctx, restaurant.ID)
	require.NoError(t, err)
	require.False(t, mergedAny)

	require.Equal(t, list, listHours(t, ts, restaurant.ID))
}

func TestMergeAdjacentChain(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	for _, interval := range [][2]int32{{0, 14400}, {14400, 43200}, {43200, 86400}} {
		require.NoError(t, svc.CreateMultiple(ctx, restaurant.ID, []int32{3}, interval[0], interval[1]))
	}

	mergedAny, err := svc.MergeAdjacent(ctx, restaurant.ID)
	require.NoError(t, err)
	require.True(t, mergedAny)

	list := listHours(t, ts, restaurant.ID)
	require.Len(t, list, 1)
	require.Equal(t, int32(0), list[0].Opens)
	require.Equal(t, int32(86400), list[0].Closes)
}

func TestMergeAdjacentDoesNotCrossDays(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	require.NoError(t, svc.CreateMultiple(ctx, restaurant.ID, []int32{1}, 43200, 86400))
	require.NoError(t, svc.CreateMultiple(ctx, restaurant.ID, []int32{2}, 0, 43200))

	mergedAny, err := svc.MergeAdjacent(ctx, restaurant.ID)
	require.NoError(t, err)
	require.False(t, mergedAny)
	require.Len(t, listHours(t, ts, restaurant.ID), 2)
}

func TestValidateInterval(t *testing.T) {
	ctx := context.Background()
	svc, ts, restaurant := newTestService(t)

	err := ts.RunInTransaction(ctx, func(ctx context.Context, tx *store.Store) error {
		return svc.createWithValidation(ctx, tx, &store.BusinessHour{
			RestaurantID: restaurant.ID,
			Day:          1,
			Opens:        43200,
			Closes:       43200,
		})
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, FieldInterval, validationErr.Field)
}
