package store

import (
	"context"
	"fmt"
)

var categoriesTable = table[Category]{
	name:    "categories",
	columns: []string{"id", "user_id", "name"},
	insert: func(c Category) ([]string, []any) {
		return []string{"user_id", "name"}, []any{c.UserID, c.Name}
	},
	scan: func(row scanner) (Category, error) {
		var c Category
		err := row.Scan(&c.ID, &c.UserID, &c.Name)
		return c, err
	},
}

type Categories struct {
	Repository[Category]
}

// GetAllByUserID lists the user's categories in insertion order.
func (r Categories) GetAllByUserID(ctx context.Context, userID int64) ([]Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categories WHERE user_id = $1 ORDER BY id", r.t.selectList(""))
	return r.many(ctx, query, userID)
}
