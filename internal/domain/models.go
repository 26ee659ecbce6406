// Package domain defines the persistence models for clothing items and
// outfits. These types are mapped with GORM and form the core data layer
// of the wardrobe application.
package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Clothing categories form a closed enumeration. The vision model is asked
// to pick one of these values; the service layer rejects anything else
// before persistence.
const (
	CategoryTop       = "top"
	CategoryBottom    = "bottom"
	CategoryShoes     = "shoes"
	CategoryAccessory = "accessory"
	CategoryOuterwear = "outerwear"
)

// Categories returns the closed set of valid clothing categories.
func Categories() []string {
	return []string{CategoryTop, CategoryBottom, CategoryShoes, CategoryAccessory, CategoryOuterwear}
}

// ValidCategory reports whether s (already normalized to lowercase) is one
// of the enumerated clothing categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryTop, CategoryBottom, CategoryShoes, CategoryAccessory, CategoryOuterwear:
		return true
	}
	return false
}

// NormalizeCategory trims and lower-cases a category string as returned by
// the vision model. It does not validate; use ValidCategory for that.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ClothingItem represents a single cataloged piece of clothing owned by a
// user. Items are created once from a vision-model classification and never
// mutated afterwards; removal is an explicit user action.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: opaque identifier of the owner; indexed for catalog queries.
//   - Name: short display name derived from the classification.
//   - Category: one of the enumerated categories (top/bottom/shoes/accessory/outerwear).
//   - Color: primary color, free text.
//   - Description: style/pattern/material description, free text.
//   - ImageURL: dereferenceable URL of the source photo.
//   - AITags: ordered tag list produced by the classifier (stored as JSON).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type ClothingItem struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID      string         `json:"user_id"     gorm:"type:varchar(64);not null;index:idx_user_items"`
	Name        string         `json:"name"        gorm:"type:varchar(255);not null"`
	Category    string         `json:"category"    gorm:"type:varchar(32);not null"`
	Color       string         `json:"color"       gorm:"type:varchar(64)"`
	Description string         `json:"description" gorm:"type:text"`
	ImageURL    string         `json:"image_url"   gorm:"type:text;not null"`
	AITags      []string       `json:"ai_tags"     gorm:"serializer:json"`
	CreatedAt   time.Time      `json:"created_at"  gorm:"index"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for ClothingItem.
func (ClothingItem) TableName() string { return "clothing_items" }

// Outfit is a saved composition result: the prompt that produced it, the
// ordered item IDs the stylist model selected (after catalog filtering), and
// the matching image URLs denormalized for display. Outfits are written
// best-effort by the composition flow and are never updated or deleted.
//
// Invariant note: ClothingItemIDs should reference items owned by the same
// user, but this is enforced only by construction (the composition service
// filters the model's IDs against the caller's catalog), not by the schema.
type Outfit struct {
	ID              string         `json:"id"                gorm:"type:char(36);primaryKey"`
	UserID          string         `json:"user_id"           gorm:"type:varchar(64);not null;index:idx_user_outfits"`
	Prompt          string         `json:"prompt"            gorm:"type:text;not null"`
	ClothingItemIDs []string       `json:"clothing_item_ids" gorm:"serializer:json"`
	ImageURLs       []string       `json:"image_urls"        gorm:"serializer:json"`
	CreatedAt       time.Time      `json:"created_at"        gorm:"index"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-"                 gorm:"index"`
}

// TableName returns the database table name for Outfit.
func (Outfit) TableName() string { return "outfits" }
