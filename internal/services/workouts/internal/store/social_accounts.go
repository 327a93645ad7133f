package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var socialAccountsTable = table[SocialAccount]{
	name:    "social_accounts",
	columns: []string{"id", "user_id", "provider", "social_id"},
	insert: func(a SocialAccount) ([]string, []any) {
		return []string{"user_id", "provider", "social_id"}, []any{a.UserID, a.Provider, a.SocialID}
	},
	scan: func(row scanner) (SocialAccount, error) {
		var a SocialAccount
		err := row.Scan(&a.ID, &a.UserID, &a.Provider, &a.SocialID)
		return a, err
	},
}

type SocialAccounts struct {
	Repository[SocialAccount]
}

// GetByProviderID finds the account linked to (provider, socialID) together with its user.
func (r SocialAccounts) GetByProviderID(ctx context.Context, provider string, socialID int64) (SocialAccount, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s FROM social_accounts AS s
		 JOIN users AS u ON u.id = s.user_id
		 WHERE s.provider = $1 AND s.social_id = $2`,
		r.t.selectList("s"), usersTable.selectList("u"))

	var (
		acc      SocialAccount
		password sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, provider, socialID).Scan(
		&acc.ID,
		&acc.UserID,
		&acc.Provider,
		&acc.SocialID,
		&acc.User.ID,
		&acc.User.Name,
		&password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SocialAccount{}, ErrNotFound
		}

		return SocialAccount{}, wrapErr(err, "query social account")
	}

	if password.Valid {
		acc.User.Password = &password.String
	}

	return acc, nil
}

// Link inserts the account unless (provider, social_id) is already linked, in
// which case it returns ErrExists without aborting the surrounding transaction.
// A concurrent insert of the same pair blocks until the other transaction ends.
func (r SocialAccounts) Link(ctx context.Context, acc SocialAccount) (SocialAccount, error) {
	query := fmt.Sprintf(
		`INSERT INTO social_accounts (user_id, provider, social_id) VALUES ($1, $2, $3)
		 ON CONFLICT ON CONSTRAINT uq_provider_social_id DO NOTHING
		 RETURNING %s`, r.t.selectList(""))

	out, err := r.t.scan(r.db.QueryRowContext(ctx, query, acc.UserID, acc.Provider, acc.SocialID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SocialAccount{}, fmt.Errorf("link %s account %d: %w", acc.Provider, acc.SocialID, ErrExists)
		}

		return SocialAccount{}, wrapErr(err, "link social account")
	}

	return out, nil
}
