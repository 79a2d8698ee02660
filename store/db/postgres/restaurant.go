package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dinedex/dinedex/store"
)

func (d *DB) CreateRestaurant(ctx context.Context, create *store.Restaurant) (*store.Restaurant, error) {
	fields := []string{"uid", "name", "cuisine", "price", "rating", "location", "description"}
	placeholderValues := []any{
		create.UID, create.Name, create.Cuisine, create.Price,
		create.Rating, create.Location, create.Description,
	}

	stmt := `INSERT INTO restaurant (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	return create, nil
}

func restaurantWhere(find *store.FindRestaurant) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "restaurant.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "restaurant.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.NameSearch; v != nil {
		where, args = append(where, "restaurant.name LIKE "+placeholder(len(args)+1)), append(args, "%"+*v+"%")
	}
	if v := find.CuisineSearch; v != nil {
		where, args = append(where, "restaurant.cuisine LIKE "+placeholder(len(args)+1)), append(args, "%"+*v+"%")
	}
	if v := find.OpenAt; v != nil {
		clause := `(SELECT 1 FROM business_hour
			WHERE business_hour.restaurant_id = restaurant.id
			AND business_hour.day = ` + placeholder(len(args)+1) + `
			AND business_hour.opens <= ` + placeholder(len(args)+2) + `
			AND business_hour.closes >= ` + placeholder(len(args)+3) + `)`
		if v.Open {
			clause = "EXISTS " + clause
		} else {
			clause = "NOT EXISTS " + clause
		}
		where, args = append(where, clause), append(args, v.Day, v.Second, v.Second)
	}

	return where, args
}

func (d *DB) ListRestaurants(ctx context.Context, find *store.FindRestaurant) ([]*store.Restaurant, error) {
	where, args := restaurantWhere(find)

	query := `
		SELECT
			id, uid, created_ts, updated_ts,
			name, cuisine, price, rating, location, description
		FROM restaurant
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY restaurant.id ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Restaurant, 0)
	for rows.Next() {
		var restaurant store.Restaurant
		var cuisine, location, description sql.NullString
		var price, rating sql.NullInt32

		if err := rows.Scan(
			&restaurant.ID,
			&restaurant.UID,
			&restaurant.CreatedTs,
			&restaurant.UpdatedTs,
			&restaurant.Name,
			&cuisine,
			&price,
			&rating,
			&location,
			&description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}

		if cuisine.Valid {
			restaurant.Cuisine = &cuisine.String
		}
		if price.Valid {
			restaurant.Price = &price.Int32
		}
		if rating.Valid {
			restaurant.Rating = &rating.Int32
		}
		if location.Valid {
			restaurant.Location = &location.String
		}
		if description.Valid {
			restaurant.Description = &description.String
		}

		list = append(list, &restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate restaurants: %w", err)
	}

	return list, nil
}

func (d *DB) CountRestaurants(ctx context.Context, find *store.FindRestaurant) (int, error) {
	where, args := restaurantWhere(find)

	query := `SELECT COUNT(*) FROM restaurant WHERE ` + strings.Join(where, " AND ")

	var count int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count restaurants: %w", err)
	}
	return count, nil
}

func (d *DB) UpdateRestaurant(ctx context.Context, update *store.UpdateRestaurant) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Cuisine; v != nil {
		set, args = append(set, "cuisine = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Price; v != nil {
		set, args = append(set, "price = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Rating; v != nil {
		set, args = append(set, "rating = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Location; v != nil {
		set, args = append(set, "location = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return nil
	}

	updatedTs := time.Now().Unix()
	if v := update.UpdatedTs; v != nil {
		updatedTs = *v
	}
	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, updatedTs)

	args = append(args, update.ID)
	stmt := `UPDATE restaurant SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}

	return nil
}

func (d *DB) DeleteRestaurant(ctx context.Context, delete *store.DeleteRestaurant) error {
	stmt := `DELETE FROM restaurant WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("restaurant not found")
	}

	return nil
}
