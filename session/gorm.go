package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barbershop-web/models"

	"gorm.io/gorm"
)

// GormStore keeps sessions in the sessions table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Save(ctx context.Context, s Session) error {
	const op = "session.GormStore.Save"

	rec := models.SessionRecord{
		ID:        s.ID,
		UserID:    s.UserID,
		Role:      string(s.Role),
		FullName:  s.FullName,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
	if err := g.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (g *GormStore) Get(ctx context.Context, id string) (Session, error) {
	const op = "session.GormStore.Get"

	var rec models.SessionRecord
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return Session{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Role:      models.ParseRole(rec.Role),
		FullName:  rec.FullName,
		Email:     rec.Email,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (g *GormStore) Delete(ctx context.Context, id string) error {
	const op = "session.GormStore.Delete"

	if err := g.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SessionRecord{}).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (g *GormStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "session.GormStore.DeleteExpired"

	result := g.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.SessionRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("%s: %w", op, result.Error)
	}
	return result.RowsAffected, nil
}
