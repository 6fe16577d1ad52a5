package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"camphq/internal/adapters/storage"
	domain "camphq/internal/domain/account"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AccountStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectCols = "id, organization_id, email, password_hash, role, created_at, failed_logins, locked_until"

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectCols+" FROM account WHERE id = ?", id)
	return scanAccount(row)
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectCols+" FROM account WHERE email = ?", email)
	return scanAccount(row)
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	var lockedUntil sql.NullString
	if !entity.LockedUntil.IsZero() {
		lockedUntil = sql.NullString{String: entity.LockedUntil.Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO account (id, organization_id, email, password_hash, role, created_at, failed_logins, locked_until)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET organization_id=excluded.organization_id, email=excluded.email,
		   password_hash=excluded.password_hash, role=excluded.role,
		   failed_logins=excluded.failed_logins, locked_until=excluded.locked_until`,
		entity.ID, entity.OrganizationID, entity.Email, entity.PasswordHash, entity.Role,
		entity.CreatedAt.Format(time.RFC3339), entity.FailedLogins, lockedUntil,
	)
	return err
}

// Count returns the number of accounts.
// PRE: none
// POST: Returns the total account count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&n)
	return n, err
}

// List retrieves all Accounts.
// PRE: none
// POST: Returns all entities ordered by email
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+selectCols+" FROM account ORDER BY email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Account
	for rows.Next() {
		entity, err := scanAccountRows(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var entity domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := row.Scan(&entity.ID, &entity.OrganizationID, &entity.Email, &entity.PasswordHash,
		&entity.Role, &createdAt, &entity.FailedLogins, &lockedUntil)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	if err != nil {
		return domain.Account{}, err
	}
	return finishAccount(entity, createdAt, lockedUntil)
}

func scanAccountRows(rows *sql.Rows) (domain.Account, error) {
	var entity domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := rows.Scan(&entity.ID, &entity.OrganizationID, &entity.Email, &entity.PasswordHash,
		&entity.Role, &createdAt, &entity.FailedLogins, &lockedUntil)
	if err != nil {
		return domain.Account{}, err
	}
	return finishAccount(entity, createdAt, lockedUntil)
}

func finishAccount(entity domain.Account, createdAt string, lockedUntil sql.NullString) (domain.Account, error) {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s: bad created_at: %w", entity.ID, err)
	}
	entity.CreatedAt = t
	if lockedUntil.Valid {
		lu, err := time.Parse(time.RFC3339, lockedUntil.String)
		if err != nil {
			return domain.Account{}, fmt.Errorf("account %s: bad locked_until: %w", entity.ID, err)
		}
		entity.LockedUntil = lu
	}
	return entity, nil
}
