package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"wastetrack/pkg/platform/sentinel"
)

// PostgresStore persists declarations in PostgreSQL. The full section record
// lives in a jsonb column; the columns alongside it exist only for filtering
// and ordering.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed declaration store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Schema is the submissions table definition, applied by the operator or a
// migration step outside this package.
const Schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id         uuid PRIMARY KEY,
	account_id uuid NOT NULL,
	reference  text NOT NULL,
	state      text NOT NULL,
	record     jsonb NOT NULL,
	created    timestamptz NOT NULL,
	modified   timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS submissions_account_idx ON submissions (account_id, modified DESC);
`

func (s *PostgresStore) Create(ctx context.Context, sub *Submission) error {
	record, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	query := `
		INSERT INTO submissions (id, account_id, reference, state, record, created, modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.pool.Exec(ctx, query,
		sub.ID,
		sub.AccountID,
		sub.Reference,
		string(sub.State.Status),
		record,
		sub.Created,
		sub.Modified,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, accountID, id uuid.UUID) (*Submission, error) {
	query := `
		SELECT record
		FROM submissions
		WHERE id = $1 AND account_id = $2 AND state NOT IN ('Cancelled', 'Deleted')
	`
	var record []byte
	if err := s.pool.QueryRow(ctx, query, id, accountID).Scan(&record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	var sub Submission
	if err := json.Unmarshal(record, &sub); err != nil {
		return nil, fmt.Errorf("unmarshal submission: %w", err)
	}
	return &sub, nil
}

func (s *PostgresStore) Update(ctx context.Context, sub *Submission) error {
	record, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	query := `
		UPDATE submissions
		SET reference = $2, state = $3, record = $4, modified = $5
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		sub.ID,
		sub.Reference,
		string(sub.State.Status),
		record,
		sub.Modified,
	)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Submission, error) {
	query := `
		SELECT record
		FROM submissions
		WHERE account_id = $1 AND state NOT IN ('Cancelled', 'Deleted')
	`
	rows, err := s.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []*Submission
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		var sub Submission
		if err := json.Unmarshal(record, &sub); err != nil {
			return nil, fmt.Errorf("unmarshal submission: %w", err)
		}
		out = append(out, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
