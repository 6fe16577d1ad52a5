package organization

import (
	"context"
	"database/sql"
	"fmt"

	"camphq/internal/adapters/storage"
	domain "camphq/internal/domain/organization"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new OrganizationStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Organization by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Organization, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, contact_email FROM organization WHERE id = ?", id)
	var entity domain.Organization
	err := row.Scan(&entity.ID, &entity.Name, &entity.ContactEmail)
	if err == sql.ErrNoRows {
		return domain.Organization{}, fmt.Errorf("organization not found: %w", err)
	}
	return entity, err
}

// Save persists an Organization to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Organization) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO organization (id, name, contact_email) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, contact_email=excluded.contact_email",
		entity.ID, entity.Name, entity.ContactEmail,
	)
	return err
}

// List retrieves all Organizations.
// PRE: none
// POST: Returns all entities ordered by name
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Organization, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, contact_email FROM organization ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Organization
	for rows.Next() {
		var entity domain.Organization
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.ContactEmail); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}
