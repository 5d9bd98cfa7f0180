// internal/store/gorm_store.go
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/storefront-backend/internal/models"
)

// GormStore keeps carts as one row per line and favorites as one row per session.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) LoadCart(ctx context.Context, sessionID string) (models.Cart, error) {
	var records []models.CartItemRecord
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position").
		Find(&records).Error
	if err != nil {
		return models.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(records) == 0 {
		return models.Cart{}, nil
	}

	cart := models.Cart{Items: make([]models.CartItem, len(records))}
	for i, r := range records {
		cart.Items[i] = models.CartItem{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			AddedAt:   r.AddedAt,
		}
	}
	return cart, nil
}

// SaveCart replaces all lines of the session in one transaction.
func (s *GormStore) SaveCart(ctx context.Context, sessionID string, cart models.Cart) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.CartItemRecord{}).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return nil
		}

		records := make([]models.CartItemRecord, len(cart.Items))
		for i, item := range cart.Items {
			records[i] = models.CartItemRecord{
				SessionID: sessionID,
				ProductID: item.ProductID,
				Position:  i,
				Quantity:  item.Quantity,
				AddedAt:   normalizeTime(item.AddedAt),
			}
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *GormStore) LoadFavorites(ctx context.Context, sessionID string) (models.FavoritesList, error) {
	var records []models.FavoriteListRecord
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&records).Error; err != nil {
		return models.FavoritesList{}, fmt.Errorf("failed to load favorites: %w", err)
	}

	if len(records) == 0 || len(records[0].ProductIDs) == 0 {
		return models.FavoritesList{}, nil
	}
	return models.FavoritesList{ProductIDs: []string(records[0].ProductIDs)}, nil
}

func (s *GormStore) SaveFavorites(ctx context.Context, sessionID string, list models.FavoritesList) error {
	db := s.db.WithContext(ctx)

	if len(list.ProductIDs) == 0 {
		if err := db.Where("session_id = ?", sessionID).Delete(&models.FavoriteListRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear favorites: %w", err)
		}
		return nil
	}

	record := models.FavoriteListRecord{
		SessionID:  sessionID,
		ProductIDs: list.ProductIDs,
		UpdatedAt:  normalizeTime(time.Now()),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_ids", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}
