package camp

import (
	"context"
	"database/sql"
	"fmt"

	"camphq/internal/adapters/ingest"
	"camphq/internal/adapters/storage"
	domain "camphq/internal/domain/camp"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new CampStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectCols = "id, organization_id, name, description, location, start_date, end_date, capacity, status"

// GetByID retrieves a Camp by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Camp, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectCols+" FROM camp WHERE id = ?", id)
	var entity domain.Camp
	var startStr, endStr string
	err := row.Scan(&entity.ID, &entity.OrganizationID, &entity.Name, &entity.Description,
		&entity.Location, &startStr, &endStr, &entity.Capacity, &entity.Status)
	if err == sql.ErrNoRows {
		return domain.Camp{}, fmt.Errorf("camp not found: %w", err)
	}
	if err != nil {
		return domain.Camp{}, err
	}
	return withDates(entity, startStr, endStr)
}

// Save persists a Camp to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Camp) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO camp (id, organization_id, name, description, location, start_date, end_date, capacity, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET organization_id=excluded.organization_id, name=excluded.name,
		   description=excluded.description, location=excluded.location, start_date=excluded.start_date,
		   end_date=excluded.end_date, capacity=excluded.capacity, status=excluded.status`,
		entity.ID, entity.OrganizationID, entity.Name, entity.Description, entity.Location,
		entity.StartDate.String(), entity.EndDate.String(), entity.Capacity, entity.Status,
	)
	return err
}

// Delete removes a Camp from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM camp WHERE id = ?", id)
	return err
}

// ListByOrganizationID retrieves Camps for an organization.
// PRE: organizationID is non-empty
// POST: Returns camps ordered by start date
func (s *SQLiteStore) ListByOrganizationID(ctx context.Context, organizationID string) ([]domain.Camp, error) {
	return s.queryCamps(ctx, "SELECT "+selectCols+" FROM camp WHERE organization_id = ? ORDER BY start_date", organizationID)
}

// ListPublished retrieves all published Camps.
// PRE: none
// POST: Returns published camps ordered by start date
func (s *SQLiteStore) ListPublished(ctx context.Context) ([]domain.Camp, error) {
	return s.queryCamps(ctx, "SELECT "+selectCols+" FROM camp WHERE status = ? ORDER BY start_date", domain.StatusPublished)
}

func (s *SQLiteStore) queryCamps(ctx context.Context, query string, args ...any) ([]domain.Camp, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Camp
	for rows.Next() {
		var entity domain.Camp
		var startStr, endStr string
		if err := rows.Scan(&entity.ID, &entity.OrganizationID, &entity.Name, &entity.Description,
			&entity.Location, &startStr, &endStr, &entity.Capacity, &entity.Status); err != nil {
			return nil, err
		}
		entity, err = withDates(entity, startStr, endStr)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

func withDates(entity domain.Camp, startStr, endStr string) (domain.Camp, error) {
	start, err := ingest.ParseDate(startStr)
	if err != nil {
		return domain.Camp{}, fmt.Errorf("camp %s: bad start_date: %w", entity.ID, err)
	}
	end, err := ingest.ParseDate(endStr)
	if err != nil {
		return domain.Camp{}, fmt.Errorf("camp %s: bad end_date: %w", entity.ID, err)
	}
	entity.StartDate = start
	entity.EndDate = end
	return entity, nil
}
