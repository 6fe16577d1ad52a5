package registration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"camphq/internal/adapters/ingest"
	"camphq/internal/adapters/storage"
	domain "camphq/internal/domain/registration"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new RegistrationStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectCols = "id, camp_id, camper_name, camper_birth_date, parent_name, parent_email, status, registered_at"

// GetByID retrieves a Registration by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectCols+" FROM registration WHERE id = ?", id)
	return scanRegistration(row)
}

// Save persists a Registration to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Registration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registration (id, camp_id, camper_name, camper_birth_date, parent_name, parent_email, status, registered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET camp_id=excluded.camp_id, camper_name=excluded.camper_name,
		   camper_birth_date=excluded.camper_birth_date, parent_name=excluded.parent_name,
		   parent_email=excluded.parent_email, status=excluded.status`,
		entity.ID, entity.CampID, entity.CamperName, entity.CamperBirthDate.String(),
		entity.ParentName, entity.ParentEmail, entity.Status, entity.RegisteredAt.Format(time.RFC3339),
	)
	return err
}

// ListByCampID retrieves a camp's Registrations.
// PRE: campID is non-empty
// POST: Returns registrations ordered by registration time
func (s *SQLiteStore) ListByCampID(ctx context.Context, campID string) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectCols+" FROM registration WHERE camp_id = ? ORDER BY registered_at", campID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Registration
	for rows.Next() {
		entity, err := scanRegistrationRows(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// CountActiveByCampID counts registrations that occupy a camp place.
// PRE: campID is non-empty
// POST: Returns the number of active registrations
func (s *SQLiteStore) CountActiveByCampID(ctx context.Context, campID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM registration WHERE camp_id = ? AND status = ?",
		campID, domain.StatusActive).Scan(&n)
	return n, err
}

// FirstWaitlisted returns the oldest waitlisted registration for a camp.
// PRE: campID is non-empty
// POST: Returns the entity or sql.ErrNoRows-wrapped error if the waitlist is empty
func (s *SQLiteStore) FirstWaitlisted(ctx context.Context, campID string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectCols+" FROM registration WHERE camp_id = ? AND status = ? ORDER BY registered_at LIMIT 1",
		campID, domain.StatusWaitlisted)
	return scanRegistration(row)
}

func scanRegistration(row *sql.Row) (domain.Registration, error) {
	var entity domain.Registration
	var birthStr, registeredStr string
	err := row.Scan(&entity.ID, &entity.CampID, &entity.CamperName, &birthStr,
		&entity.ParentName, &entity.ParentEmail, &entity.Status, &registeredStr)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	if err != nil {
		return domain.Registration{}, err
	}
	return withFields(entity, birthStr, registeredStr)
}

func scanRegistrationRows(rows *sql.Rows) (domain.Registration, error) {
	var entity domain.Registration
	var birthStr, registeredStr string
	err := rows.Scan(&entity.ID, &entity.CampID, &entity.CamperName, &birthStr,
		&entity.ParentName, &entity.ParentEmail, &entity.Status, &registeredStr)
	if err != nil {
		return domain.Registration{}, err
	}
	return withFields(entity, birthStr, registeredStr)
}

func withFields(entity domain.Registration, birthStr, registeredStr string) (domain.Registration, error) {
	birth, err := ingest.ParseDate(birthStr)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("registration %s: bad camper_birth_date: %w", entity.ID, err)
	}
	entity.CamperBirthDate = birth
	registered, err := time.Parse(time.RFC3339, registeredStr)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("registration %s: bad registered_at: %w", entity.ID, err)
	}
	entity.RegisteredAt = registered
	return entity, nil
}
