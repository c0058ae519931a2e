package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository is a SQLite-backed store for menu items, keyed by name.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository over an existing connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every menu item in the catalog.
func (r *Repository) GetAll(ctx context.Context) ([]MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, category, calories, protein, fat, carbs, sodium FROM menus ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var item MenuItem
		if err := rows.Scan(
			&item.Name,
			&item.Category,
			&item.Nutrition.Calories,
			&item.Nutrition.Protein,
			&item.Nutrition.Fat,
			&item.Nutrition.Carbs,
			&item.Nutrition.Sodium,
		); err != nil {
			return nil, fmt.Errorf("failed to scan menu row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu rows: %w", err)
	}
	return items, nil
}

// Insert adds a new menu item. Inserting an already-present name fails with
// the store's uniqueness error.
func (r *Repository) Insert(ctx context.Context, item MenuItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO menus (name, category, calories, protein, fat, carbs, sodium)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Name,
		string(item.Category),
		item.Nutrition.Calories,
		item.Nutrition.Protein,
		item.Nutrition.Fat,
		item.Nutrition.Carbs,
		item.Nutrition.Sodium,
	)
	if err != nil {
		return fmt.Errorf("failed to insert menu %q: %w", item.Name, err)
	}
	return nil
}

// UpdateCategory changes the category of an existing menu item.
func (r *Repository) UpdateCategory(ctx context.Context, name string, category Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE menus SET category = ? WHERE name = ?`, string(category), name)
	if err != nil {
		return fmt.Errorf("failed to update category for %q: %w", name, err)
	}
	return requireRowAffected(res, name)
}

// UpdateNutrition replaces the nutrition facts of an existing menu item.
func (r *Repository) UpdateNutrition(ctx context.Context, name string, n Nutrition) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE menus SET calories = ?, protein = ?, fat = ?, carbs = ?, sodium = ? WHERE name = ?`,
		n.Calories, n.Protein, n.Fat, n.Carbs, n.Sodium, name)
	if err != nil {
		return fmt.Errorf("failed to update nutrition for %q: %w", name, err)
	}
	return requireRowAffected(res, name)
}

// DeleteByName removes a menu item. Deleting an absent name is not an error.
func (r *Repository) DeleteByName(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM menus WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete menu %q: %w", name, err)
	}
	return nil
}

func requireRowAffected(res sql.Result, name string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("menu %q not found", name)
	}
	return nil
}
