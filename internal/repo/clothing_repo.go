// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ClothingItem model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an item is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//   - DeleteClothingItem deliberately does NOT treat zero affected rows as
//     an error: a delete scoped to (itemID, userID) that matches nothing is
//     a no-op by contract, including when the item belongs to another user.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-wardrobe-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateClothingItem inserts a new catalog row owned by userID, assigning a
// fresh UUID and a UTC creation timestamp. The classification fields are
// stored verbatim; validation happens in the service layer.
func CreateClothingItem(ctx context.Context, db *gorm.DB, item *domain.ClothingItem) (*domain.ClothingItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListClothingItems returns all items belonging to userID, ordered by
// creation time descending (most recent first) with the item ID as a
// deterministic tiebreak. It returns an empty slice if the user has no
// items. On DB error, it returns the error.
func ListClothingItems(ctx context.Context, db *gorm.DB, userID string) ([]domain.ClothingItem, error) {
	var out []domain.ClothingItem
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&out).Error
	return out, err
}

// GetClothingItem fetches a single item by ID scoped to userID, or
// ErrNotFound if missing or owned by someone else.
func GetClothingItem(ctx context.Context, db *gorm.DB, id, userID string) (*domain.ClothingItem, error) {
	var item domain.ClothingItem
	if err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteClothingItem soft-deletes the item with the given ID, scoped to
// userID. It returns the number of rows affected; zero is not an error,
// which makes deletes of foreign or unknown items silent no-ops.
func DeleteClothingItem(ctx context.Context, db *gorm.DB, id, userID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.ClothingItem{})
	return res.RowsAffected, res.Error
}

// CountClothingItems returns the total number of items owned by userID.
func CountClothingItems(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ClothingItem{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
