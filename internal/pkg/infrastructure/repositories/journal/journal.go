package journal

import (
	"context"
	"time"

	"github.com/fieldwatch/emergency-monitor/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate moq -rm -out journal_mock.go . Journal

// Journal is an append-only audit trail of emergency alarm transitions.
// The monitor writes to it on a best-effort basis, the in-memory roster
// never depends on it.
type Journal interface {
	Add(ctx context.Context, entry types.JournalEntry) error
	GetLatest(ctx context.Context, limit int) ([]types.JournalEntry, error)
	GetByUserID(ctx context.Context, userID string) ([]types.JournalEntry, error)
}

type entry struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index"`
	UserName   string
	Rank       string
	Location   string
	Entry      string
	ObservedAt time.Time `gorm:"index"`
}

type journalImpl struct {
	db *gorm.DB
}

func New(connect ConnectorFunc) (Journal, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&entry{})
	if err != nil {
		return nil, err
	}

	return &journalImpl{db: impl}, nil
}

func (j *journalImpl) Add(ctx context.Context, e types.JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ObservedAt.IsZero() {
		e.ObservedAt = time.Now().UTC()
	}

	result := j.db.WithContext(ctx).Create(&entry{
		ID:         e.ID,
		UserID:     e.UserID,
		UserName:   e.UserName,
		Rank:       e.Rank,
		Location:   e.Location,
		Entry:      e.Entry,
		ObservedAt: e.ObservedAt,
	})

	return result.Error
}

func (j *journalImpl) GetLatest(ctx context.Context, limit int) ([]types.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	entries := []entry{}

	err := j.db.WithContext(ctx).
		Order("observed_at desc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return toTypes(entries), nil
}

func (j *journalImpl) GetByUserID(ctx context.Context, userID string) ([]types.JournalEntry, error) {
	entries := []entry{}

	err := j.db.WithContext(ctx).
		Where(&entry{UserID: userID}).
		Order("observed_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return toTypes(entries), nil
}

func toTypes(entries []entry) []types.JournalEntry {
	result := make([]types.JournalEntry, 0, len(entries))

	for _, e := range entries {
		result = append(result, types.JournalEntry{
			ID:         e.ID,
			UserID:     e.UserID,
			UserName:   e.UserName,
			Rank:       e.Rank,
			Location:   e.Location,
			Entry:      e.Entry,
			ObservedAt: e.ObservedAt,
		})
	}

	return result
}
