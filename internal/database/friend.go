// internal/database/friend.go

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bdaybook/internal/models"
)

// ErrNotFound reports that no friend row matched the requested id. Callers
// must treat it as a normal branch, distinct from a storage fault.
var ErrNotFound = errors.New("friend not found")

// FriendStore runs the friends table CRUD against a pgx pool. Birthday
// crosses the wire as its canonical YYYY-MM-DD text so the value the form
// submitted is the value a later read returns.
type FriendStore struct {
	pool *pgxpool.Pool
}

// NewFriendStore wraps a connected pool.
func NewFriendStore(pool *pgxpool.Pool) *FriendStore {
	return &FriendStore{pool: pool}
}

// FetchPage returns at most limit rows ordered by id ascending, skipping
// the first offset rows. No snapshot isolation: a concurrent insert or
// delete may shift page boundaries between calls.
func (s *FriendStore) FetchPage(ctx context.Context, limit, offset int) ([]models.Friend, error) {
	q := `
		SELECT id, first_name, last_name, email_address, to_char(birthday, 'YYYY-MM-DD')
		FROM friends
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query friends page: %w", err)
	}
	defer rows.Close()

	var fs []models.Friend
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.ID, &f.FirstName, &f.LastName, &f.EmailAddress, &f.Birthday); err != nil {
			return nil, fmt.Errorf("failed to scan friend row: %w", err)
		}
		fs = append(fs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read friends page: %w", err)
	}
	return fs, nil
}

// FetchByID returns the friend with the given id, or ErrNotFound.
func (s *FriendStore) FetchByID(ctx context.Context, id int64) (models.Friend, error) {
	q := `
		SELECT id, first_name, last_name, email_address, to_char(birthday, 'YYYY-MM-DD')
		FROM friends
		WHERE id = $1
	`
	var f models.Friend
	err := s.pool.QueryRow(ctx, q, id).Scan(&f.ID, &f.FirstName, &f.LastName, &f.EmailAddress, &f.Birthday)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Friend{}, ErrNotFound
	}
	if err != nil {
		return models.Friend{}, fmt.Errorf("failed to fetch friend %d: %w", id, err)
	}
	return f, nil
}

// Count returns the total number of friend rows.
func (s *FriendStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM friends`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count friends: %w", err)
	}
	return n, nil
}

// Insert stores a new friend and returns the id the table assigned. The
// id field of the argument is ignored.
func (s *FriendStore) Insert(ctx context.Context, f models.Friend) (int64, error) {
	q := `
		INSERT INTO friends (first_name, last_name, email_address, birthday)
		VALUES ($1, $2, $3, $4::date)
		RETURNING id
	`
	var id int64
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q, f.FirstName, f.LastName, f.EmailAddress, f.Birthday).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert friend: %w", err)
	}
	return id, nil
}

// Update overwrites the mutable fields of the row with the given id. When
// the id does not exist nothing happens; existence checks are the
// caller's business.
func (s *FriendStore) Update(ctx context.Context, id int64, f models.Friend) error {
	q := `
		UPDATE friends
		SET first_name=$1, last_name=$2, email_address=$3, birthday=$4::date
		WHERE id=$5
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, f.FirstName, f.LastName, f.EmailAddress, f.Birthday, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update friend %d: %w", id, err)
	}
	return nil
}

// Delete removes the row with the given id. Deleting an absent id is not
// an error.
func (s *FriendStore) Delete(ctx context.Context, id int64) error {
	q := `DELETE FROM friends WHERE id=$1`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete friend %d: %w", id, err)
	}
	return nil
}
