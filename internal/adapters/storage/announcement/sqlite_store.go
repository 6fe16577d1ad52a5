package announcement

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"camphq/internal/adapters/storage"
	domain "camphq/internal/domain/announcement"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AnnouncementStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectCols = "id, camp_id, type, status, title, body, created_by, created_at"

// GetByID retrieves an Announcement by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Announcement, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectCols+" FROM announcement WHERE id = ?", id)
	var entity domain.Announcement
	var createdStr string
	err := row.Scan(&entity.ID, &entity.CampID, &entity.Type, &entity.Status,
		&entity.Title, &entity.Body, &entity.CreatedBy, &createdStr)
	if err == sql.ErrNoRows {
		return domain.Announcement{}, fmt.Errorf("announcement not found: %w", err)
	}
	if err != nil {
		return domain.Announcement{}, err
	}
	entity.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("announcement %s: bad created_at: %w", entity.ID, err)
	}
	return entity, nil
}

// Save persists an Announcement to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Announcement) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO announcement (id, camp_id, type, status, title, body, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET type=excluded.type, status=excluded.status,
		   title=excluded.title, body=excluded.body`,
		entity.ID, entity.CampID, entity.Type, entity.Status, entity.Title, entity.Body,
		entity.CreatedBy, entity.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// Delete removes an Announcement from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM announcement WHERE id = ?", id)
	return err
}

// ListByCampID retrieves all of a camp's Announcements.
// PRE: campID is non-empty
// POST: Returns announcements, newest first
func (s *SQLiteStore) ListByCampID(ctx context.Context, campID string) ([]domain.Announcement, error) {
	return s.queryAnnouncements(ctx,
		"SELECT "+selectCols+" FROM announcement WHERE camp_id = ? ORDER BY created_at DESC", campID)
}

// ListPublishedByCampID retrieves a camp's published Announcements.
// PRE: campID is non-empty
// POST: Returns published announcements, newest first
func (s *SQLiteStore) ListPublishedByCampID(ctx context.Context, campID string) ([]domain.Announcement, error) {
	return s.queryAnnouncements(ctx,
		"SELECT "+selectCols+" FROM announcement WHERE camp_id = ? AND status = ? ORDER BY created_at DESC",
		campID, domain.StatusPublished)
}

func (s *SQLiteStore) queryAnnouncements(ctx context.Context, query string, args ...any) ([]domain.Announcement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Announcement
	for rows.Next() {
		var entity domain.Announcement
		var createdStr string
		if err := rows.Scan(&entity.ID, &entity.CampID, &entity.Type, &entity.Status,
			&entity.Title, &entity.Body, &entity.CreatedBy, &createdStr); err != nil {
			return nil, err
		}
		entity.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
		if err != nil {
			return nil, fmt.Errorf("announcement %s: bad created_at: %w", entity.ID, err)
		}
		results = append(results, entity)
	}
	return results, nil
}
