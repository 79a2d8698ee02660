package store

import (
	"context"
)

// Restaurant is the object representing a restaurant listing.
type Restaurant struct {
	ID        int32
	UID       string
	CreatedTs int64
	UpdatedTs int64

	Name        string
	Cuisine     *string
	Price       *int32
	Rating      *int32
	Location    *string
	Description *string
}

// FindRestaurant is the find condition for restaurant.
type FindRestaurant struct {
	ID  *int32
	UID *string

	// Substring filters
	NameSearch    *string
	CuisineSearch *string

	// OpenAt filters restaurants by their open state at an instant.
	OpenAt *OpenAtFilter

	// Pagination
	Limit  *int
	Offset *int
}

// OpenAtFilter matches restaurants that have (or lack) a business hour
// covering the given day and second-of-day.
type OpenAtFilter struct {
	Day    int32
	Second int32
	// Open selects restaurants open at the instant when true,
	// closed ones when false.
	Open bool
}

// UpdateRestaurant is the update request for restaurant.
type UpdateRestaurant struct {
	ID          int32
	UpdatedTs   *int64
	Name        *string
	Cuisine     *string
	Price       *int32
	Rating      *int32
	Location    *string
	Description *string
}

// DeleteRestaurant is the delete request for restaurant.
// Business hours owned by the restaurant are removed by the
// cascading foreign key.
type DeleteRestaurant struct {
	ID int32
}

// CreateRestaurant creates a new restaurant.
func (s *Store) CreateRestaurant(ctx context.Context, create *Restaurant) (*Restaurant, error) {
	return s.driver.CreateRestaurant(ctx, create)
}

// ListRestaurants lists restaurants with filter.
func (s *Store) ListRestaurants(ctx context.Context, find *FindRestaurant) ([]*Restaurant, error) {
	return s.driver.ListRestaurants(ctx, find)
}

// CountRestaurants counts restaurants matching the filter, ignoring pagination.
func (s *Store) CountRestaurants(ctx context.Context, find *FindRestaurant) (int, error) {
	return s.driver.CountRestaurants(ctx, find)
}

// GetRestaurant gets a restaurant by find condition.
func (s *Store) GetRestaurant(ctx context.Context, find *FindRestaurant) (*Restaurant, error) {
	if s.restaurantCache != nil && find.UID != nil && find.ID == nil && find.OpenAt == nil {
		if v, ok := s.restaurantCache.Get(*find.UID); ok {
			if restaurant, ok := v.(*Restaurant); ok {
				return restaurant, nil
			}
		}
	}

	list, err := s.driver.ListRestaurants(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	restaurant := list[0]
	if s.restaurantCache != nil {
		s.restaurantCache.Set(restaurant.UID, restaurant)
	}
	return restaurant, nil
}

// UpdateRestaurant updates a restaurant.
func (s *Store) UpdateRestaurant(ctx context.Context, update *UpdateRestaurant) error {
	if err := s.driver.UpdateRestaurant(ctx, update); err != nil {
		return err
	}
	if s.restaurantCache != nil {
		s.restaurantCache.DeleteByValue(func(v any) bool {
			restaurant, ok := v.(*Restaurant)
			return ok && restaurant.ID == update.ID
		})
	}
	return nil
}

// DeleteRestaurant deletes a restaurant and, through the cascade, its hours.
func (s *Store) DeleteRestaurant(ctx context.Context, delete *DeleteRestaurant) error {
	if err := s.driver.DeleteRestaurant(ctx, delete); err != nil {
		return err
	}
	if s.restaurantCache != nil {
		s.restaurantCache.DeleteByValue(func(v any) bool {
			restaurant, ok := v.(*Restaurant)
			return ok && restaurant.ID == delete.ID
		})
	}
	return nil
}
