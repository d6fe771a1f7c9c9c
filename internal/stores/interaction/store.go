package interaction

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/imfe-lab/aulalab/internal/session"
)

// ErrUnavailable indicates the durable store rejected or never received a write
var ErrUnavailable = errors.New("interaction store unavailable")

// Store handles interaction persistence using GORM
type Store struct {
	db *gorm.DB
}

// NewStore creates a new interaction store with GORM connection
func NewStore(databaseURL string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}

	// Auto-migrate tables
	if err := db.AutoMigrate(&Interaction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// Save inserts one interaction row. Inserts only; rows are never updated or
// deleted.
func (s *Store) Save(ctx context.Context, interaction *Interaction) error {
	result := s.db.WithContext(ctx).Create(interaction)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, result.Error)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

// Mirror adapts the store into the best-effort turn mirror: failures are
// reported to the operator log and never reach the turn-handling path.
type Mirror struct {
	store *Store
}

// NewMirror wraps a store as a turn mirror
func NewMirror(store *Store) *Mirror {
	return &Mirror{store: store}
}

// Record mirrors one turn, swallowing any storage fault
func (m *Mirror) Record(ctx context.Context, turn session.Turn) {
	if m == nil || m.store == nil {
		return
	}

	if err := m.store.Save(ctx, NewInteraction(turn)); err != nil {
		log.Printf("[MIRROR]: Failed to mirror turn for %s/%s: %v", turn.CourseCode, turn.GroupID, err)
	}
}
