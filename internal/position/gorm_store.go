package position

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/haiphan2000/trendbot/pkg/types"
)

// TradeRecord is the persisted form of a position. Open positions are rows
// with a NULL closed_at; closing fills in exit, profit and closed_at rather
// than deleting the row, so the table doubles as the trade ledger.
type TradeRecord struct {
	ID            uint       `gorm:"primaryKey"`
	UserID        uint       `gorm:"not null;index:idx_open_slot"`
	Market        string     `gorm:"not null;index:idx_open_slot"`
	Symbol        string     `gorm:"not null;index:idx_open_slot"`
	Side          string     `gorm:"not null"`
	Entry         float64    `gorm:"not null"`
	Size          float64    `gorm:"not null"`
	Value         float64    `gorm:"not null"`
	OpenedAt      time.Time  `gorm:"not null"`
	Exit          *float64   `gorm:""`
	Profit        *float64   `gorm:""`
	ProfitPercent *float64   `gorm:""`
	ClosedAt      *time.Time `gorm:""`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (TradeRecord) TableName() string {
	return "bot_trades"
}

// GormStore is a Store backed by a SQL database through gorm. The open/close
// pair runs inside transactions so two bot instances cannot double-open the
// same slot.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a database-backed position store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// NewGormStoreFromDSN opens a Postgres connection, runs the schema
// migration, and returns a ready store.
func NewGormStoreFromDSN(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	store := NewGormStore(db)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("migrating bot_trades: %w", err)
	}
	return store, nil
}

// Migrate creates the bot_trades table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&TradeRecord{})
}

func (s *GormStore) Get(ctx context.Context, key Key) (Position, error) {
	var rec TradeRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND market = ? AND symbol = ? AND closed_at IS NULL",
			key.UserID, string(key.Market), key.Symbol).
		Order("opened_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Position{}, ErrPositionNotFound
	}
	if err != nil {
		return Position{}, err
	}
	return recordToPosition(rec), nil
}

func (s *GormStore) Open(ctx context.Context, pos Position) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&TradeRecord{}).
			Where("user_id = ? AND market = ? AND symbol = ? AND closed_at IS NULL",
				pos.UserID, string(pos.Market), pos.Symbol).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPositionExists
		}
		return tx.Create(&TradeRecord{
			UserID:   pos.UserID,
			Market:   string(pos.Market),
			Symbol:   pos.Symbol,
			Side:     string(pos.Side),
			Entry:    pos.Entry,
			Size:     pos.Size,
			Value:    pos.Value,
			OpenedAt: pos.OpenedAt,
		}).Error
	})
}

func (s *GormStore) Close(ctx context.Context, key Key, exitPrice float64, closedAt time.Time) (float64, error) {
	var profit float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec TradeRecord
		err := tx.Where("user_id = ? AND market = ? AND symbol = ? AND closed_at IS NULL",
			key.UserID, string(key.Market), key.Symbol).
			Order("opened_at DESC").
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPositionNotFound
		}
		if err != nil {
			return err
		}

		pos := recordToPosition(rec)
		profit = pos.RealizedProfit(exitPrice)
		pct := 0.0
		if rec.Entry != 0 {
			pct = (exitPrice - rec.Entry) / rec.Entry
			if pos.Side == types.SideSell {
				pct = -pct
			}
		}

		return tx.Model(&rec).Updates(map[string]interface{}{
			"exit":           exitPrice,
			"profit":         profit,
			"profit_percent": pct,
			"closed_at":      closedAt,
		}).Error
	})
	return profit, err
}

func recordToPosition(rec TradeRecord) Position {
	return Position{
		UserID:   rec.UserID,
		Market:   types.Market(rec.Market),
		Symbol:   rec.Symbol,
		Side:     types.Side(rec.Side),
		Entry:    rec.Entry,
		Size:     rec.Size,
		Value:    rec.Value,
		OpenedAt: rec.OpenedAt,
	}
}
