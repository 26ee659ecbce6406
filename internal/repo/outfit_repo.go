// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Outfit
// model. Outfits are append-only: there is no update or delete operation.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-wardrobe-backend/internal/domain"
)

// CreateOutfit inserts a new outfit row owned by userID capturing the
// originating prompt, the resolved item IDs, and their image URLs.
func CreateOutfit(ctx context.Context, db *gorm.DB, userID, prompt string, itemIDs, imageURLs []string) (*domain.Outfit, error) {
	o := &domain.Outfit{
		ID:              uuid.NewString(),
		UserID:          userID,
		Prompt:          prompt,
		ClothingItemIDs: itemIDs,
		ImageURLs:       imageURLs,
		CreatedAt:       time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// ListOutfits returns all outfits belonging to userID, ordered by creation
// time descending with the outfit ID as a deterministic tiebreak.
func ListOutfits(ctx context.Context, db *gorm.DB, userID string) ([]domain.Outfit, error) {
	var out []domain.Outfit
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&out).Error
	return out, err
}
