package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
)

var _ Recorder = (*Store)(nil)

type entryModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Category  string `gorm:"index:idx_journal_operation"`
	Operation string `gorm:"index:idx_journal_operation"`
	Actor     string
	Params    datatypes.JSON
	Status    string `gorm:"size:16"`
	Error     string
	CreatedAt time.Time `gorm:"index"`
}

func (entryModel) TableName() string { return "journal_entries" }

// Store is a sqlite-backed Recorder.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open opens (creating when needed) the sqlite journal at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("journal: path is required")
	}

	db, err := gorm.Open(gormlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}

	if err := db.AutoMigrate(&entryModel{}); err != nil {
		return nil, fmt.Errorf("journal: migrate: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Record stores entry, assigning an ID and timestamp when missing, and
// returns the stored form.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if entry.Status == "" {
		entry.Status = StatusOK
	}

	m := entryModel{
		ID:        entry.ID,
		Category:  entry.Category,
		Operation: entry.Operation,
		Actor:     entry.Actor,
		Status:    string(entry.Status),
		Error:     entry.Error,
		CreatedAt: entry.CreatedAt,
	}
	if len(entry.Params) > 0 {
		data, err := json.Marshal(entry.Params)
		if err != nil {
			return Entry{}, fmt.Errorf("journal: encode params: %w", err)
		}
		m.Params = datatypes.JSON(data)
	}

	if result := s.db.WithContext(ctx).Create(&m); result.Error != nil {
		return Entry{}, fmt.Errorf("journal: record %s.%s: %w", entry.Category, entry.Operation, result.Error)
	}
	return entry, nil
}

// Recent lists the newest entries first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var models []entryModel
	result := s.db.WithContext(ctx).
		Order("created_at desc").
		Order("rowid desc").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("journal: list: %w", result.Error)
	}

	entries := make([]Entry, 0, len(models))
	for _, m := range models {
		var params map[string]any
		if len(m.Params) > 0 {
			// numbers come back as float64
			if err := json.Unmarshal(m.Params, &params); err != nil {
				return nil, fmt.Errorf("journal: decode params of %s: %w", m.ID, err)
			}
		}
		entries = append(entries, Entry{
			ID:        m.ID,
			Category:  m.Category,
			Operation: m.Operation,
			Actor:     m.Actor,
			Params:    params,
			Status:    Status(m.Status),
			Error:     m.Error,
			CreatedAt: m.CreatedAt,
		})
	}
	return entries, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
