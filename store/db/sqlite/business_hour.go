package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinedex/dinedex/store"
)

func (d *DB) CreateBusinessHour(ctx context.Context, create *store.BusinessHour) (*store.BusinessHour, error) {
	fields := []string{"restaurant_id", "day", "opens", "closes"}
	placeholderValues := []any{create.RestaurantID, create.Day, create.Opens, create.Closes}

	stmt := `INSERT INTO business_hour (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create business hour: %w", err)
	}

	return create, nil
}

func (d *DB) ListBusinessHours(ctx context.Context, find *store.FindBusinessHour) ([]*store.BusinessHour, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "business_hour.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.RestaurantID; v != nil {
		where, args = append(where, "business_hour.restaurant_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Day; v != nil {
		where, args = append(where, "business_hour.day = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, restaurant_id, day, opens, closes
		FROM business_hour
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY day ASC, opens ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query business hours: %w", err)
	}
	defer rows.Close()

	list := make([]*store.BusinessHour, 0)
	for rows.Next() {
		var businessHour store.BusinessHour
		if err := rows.Scan(
			&businessHour.ID,
			&businessHour.RestaurantID,
			&businessHour.Day,
			&businessHour.Opens,
			&businessHour.Closes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan business hour: %w", err)
		}
		list = append(list, &businessHour)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate business hours: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateBusinessHour(ctx context.Context, update *store.UpdateBusinessHour) error {
	set, args := []string{}, []any{}

	if v := update.Opens; v != nil {
		set, args = append(set, "opens = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Closes; v != nil {
		set, args = append(set, "closes = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)
	stmt := `UPDATE business_hour SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update business hour: %w", err)
	}

	return nil
}

func (d *DB) DeleteBusinessHour(ctx context.Context, delete *store.DeleteBusinessHour) error {
	stmt := `DELETE FROM business_hour WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete business hour: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("business hour not found")
	}

	return nil
}
