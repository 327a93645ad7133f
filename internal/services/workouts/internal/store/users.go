package store

import (
	"context"
	"database/sql"
	"fmt"
)

var usersTable = table[User]{
	name:    "users",
	columns: []string{"id", "name", "password"},
	insert: func(u User) ([]string, []any) {
		return []string{"name", "password"}, []any{u.Name, nullString(u.Password)}
	},
	scan: scanUser,
}

func scanUser(row scanner) (User, error) {
	var (
		u        User
		password sql.NullString
	)

	if err := row.Scan(&u.ID, &u.Name, &password); err != nil {
		return User{}, err
	}

	if password.Valid {
		u.Password = &password.String
	}

	return u, nil
}

type Users struct {
	Repository[User]
}

// GetByCategoryID returns the owner of the category.
func (r Users) GetByCategoryID(ctx context.Context, categoryID int64) (User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users AS u
		 JOIN categories AS c ON c.user_id = u.id
		 WHERE c.id = $1`, r.t.selectList("u"))

	return r.one(ctx, query, categoryID)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}
