package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ericogr/siegebot/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cooldownRecord persists the start time of the latest encounter per kind.
type cooldownRecord struct {
	PlayerID  string    `gorm:"primaryKey"`
	Kind      string    `gorm:"primaryKey"`
	StartedAt time.Time `gorm:"not null"`
}

func (cooldownRecord) TableName() string { return "encounter_cooldowns" }

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetProfile(ctx context.Context, playerID string) (*game.Profile, error) {
	var p game.Profile
	if err := r.db.WithContext(ctx).Where("player_id = ?", playerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if p.Inventory == nil {
		p.Inventory = game.Inventory{}
	}
	return &p, nil
}

func (r *sqliteRepository) CreateProfile(ctx context.Context, p *game.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *sqliteRepository) SaveProfile(ctx context.Context, p *game.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// GetTopPlayers returns top N players ordered by kills desc, then experience desc
func (r *sqliteRepository) GetTopPlayers(ctx context.Context, limit int) ([]game.Profile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.Profile
	if err := r.db.WithContext(ctx).Model(&game.Profile{}).
		Order("kills DESC").
		Order("experience DESC").
		Order("player_id ASC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) LastStart(ctx context.Context, playerID string, kind game.Kind) (time.Time, bool, error) {
	var rec cooldownRecord
	err := r.db.WithContext(ctx).Where("player_id = ? AND kind = ?", playerID, string(kind)).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return rec.StartedAt, true, nil
}

// RecordStart overwrites the start time for (player, kind).
func (r *sqliteRepository) RecordStart(ctx context.Context, playerID string, kind game.Kind, at time.Time) error {
	rec := cooldownRecord{PlayerID: playerID, Kind: string(kind), StartedAt: at.UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"started_at"}),
	}).Create(&rec).Error
}

func (r *sqliteRepository) ClearStart(ctx context.Context, playerID string, kind game.Kind) error {
	return r.db.WithContext(ctx).
		Where("player_id = ? AND kind = ?", playerID, string(kind)).
		Delete(&cooldownRecord{}).Error
}
