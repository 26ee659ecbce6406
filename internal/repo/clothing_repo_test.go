package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-wardrobe-backend/internal/domain"
)

func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("wardrobe_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedItem(t *testing.T, db *gorm.DB, userID, name string, createdAt time.Time) *domain.ClothingItem {
	t.Helper()
	item := &domain.ClothingItem{
		UserID:    userID,
		Name:      name,
		Category:  domain.CategoryTop,
		Color:     "blue",
		ImageURL:  "https://img.example.com/" + name + ".jpg",
		AITags:    []string{"casual"},
		CreatedAt: createdAt,
	}
	created, err := CreateClothingItem(context.Background(), db, item)
	if err != nil {
		t.Fatalf("seed item %q: %v", name, err)
	}
	return created
}

func TestCreateClothingItem_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	item, err := CreateClothingItem(context.Background(), db, &domain.ClothingItem{UserID: "u1"})
	if err == nil || item != nil {
		t.Fatalf("expected error creating without table, got item=%v err=%v", item, err)
	}
}

func TestCreateClothingItem_AssignsIDAndTimestamp(t *testing.T) {
	db := newRepoDB(t, &domain.ClothingItem{})

	start := time.Now().UTC().Add(-time.Minute)
	item, err := CreateClothingItem(context.Background(), db, &domain.ClothingItem{
		UserID:   "u1",
		Name:     "Blue Denim Jacket",
		Category: domain.CategoryOuterwear,
		ImageURL: "https://img.example.com/jacket.jpg",
		AITags:   []string{"denim", "casual"},
	})
	if err != nil {
		t.Fatalf("CreateClothingItem: %v", err)
	}
	if item.ID == "" {
		t.Fatalf("expected assigned ID, got empty")
	}
	if item.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset/really old: %v", item.CreatedAt)
	}

	// round-trip, including the JSON-serialized tags
	var got domain.ClothingItem
	if err := db.First(&got, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("load created item: %v", err)
	}
	if got.UserID != "u1" || got.Category != domain.CategoryOuterwear {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if len(got.AITags) != 2 || got.AITags[0] != "denim" {
		t.Fatalf("tags did not round-trip: %v", got.AITags)
	}
}

func TestListClothingItems_OrderDescendingAndFilter(t *testing.T) {
	db := newRepoDB(t, &domain.ClothingItem{})

	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC) // oldest
	t2 := t1.Add(1 * time.Hour)
	t3 := t1.Add(2 * time.Hour) // newest

	seedItem(t, db, "u1", "oldest", t1)
	seedItem(t, db, "u1", "middle", t2)
	seedItem(t, db, "u1", "newest", t3)
	seedItem(t, db, "u2", "other-user", t3)

	items, err := ListClothingItems(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("ListClothingItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items for u1, got %d", len(items))
	}
	if items[0].Name != "newest" || items[2].Name != "oldest" {
		t.Fatalf("wrong order: %q, %q, %q", items[0].Name, items[1].Name, items[2].Name)
	}
}

func TestListClothingItems_EmptyForUnknownUser(t *testing.T) {
	db := newRepoDB(t, &domain.ClothingItem{})
	items, err := ListClothingItems(context.Background(), db, "nobody")
	if err != nil {
		t.Fatalf("ListClothingItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty catalog, got %d items", len(items))
	}
}

func TestGetClothingItem_ScopedToOwner(t *testing.T) {
	db := newRepoDB(t, &domain.ClothingItem{})
	item := seedItem(t, db, "u1", "shirt", time.Now().UTC())

	got, err := GetClothingItem(context.Background(), db, item.ID, "u1")
	if err != nil || got == nil {
		t.Fatalf("GetClothingItem owner: item=%v err=%v", got, err)
	}

	if _, err := GetClothingItem(context.Background(), db, item.ID, "u2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
}

func TestDeleteClothingItem_ScopingAndNoOp(t *testing.T) {
	db := newRepoDB(t, &domain.ClothingItem{})
	item := seedItem(t, db, "u1", "shoes", time.Now().UTC())

	// Foreign user: zero rows, no error.
	n, err := DeleteClothingItem(context.Background(), db, item.ID, "u2")
	if err != nil || n != 0 {
		t.Fatalf("foreign delete: affected=%d err=%v", n, err)
	}

	// Owner: one row.
	n, err = DeleteClothingItem(context.Background(), db, item.ID, "u1")
	if err != nil || n != 1 {
		t.Fatalf("owner delete: affected=%d err=%v", n, err)
	}

	// Soft-deleted rows disappear from listings.
	items, err := ListClothingItems(context.Background(), db, "u1")
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty catalog after delete, got items=%d err=%v", len(items), err)
	}

	// Repeated delete stays a no-op.
	n, err = DeleteClothingItem(context.Background(), db, item.ID, "u1")
	if err != nil || n != 0 {
		t.Fatalf("repeat delete: affected=%d err=%v", n, err)
	}
}

func TestCountClothingItems(t *testing.T) {
	db := newRepoDB(t, &domain.ClothingItem{})
	seedItem(t, db, "u1", "a", time.Now().UTC())
	seedItem(t, db, "u1", "b", time.Now().UTC())
	seedItem(t, db, "u2", "c", time.Now().UTC())

	n, err := CountClothingItems(context.Background(), db, "u1")
	if err != nil || n != 2 {
		t.Fatalf("CountClothingItems: n=%d err=%v", n, err)
	}
}

func TestWardrobeStats(t *testing.T) {
	db := newRepoDB(t, &domain.ClothingItem{})

	// Empty catalog: zero count, nil timestamp.
	count, maxTS, err := WardrobeStats(context.Background(), db, "u1")
	if err != nil || count != 0 || maxTS != nil {
		t.Fatalf("empty stats: count=%d ts=%v err=%v", count, maxTS, err)
	}

	seedItem(t, db, "u1", "a", time.Now().UTC())
	seedItem(t, db, "u1", "b", time.Now().UTC())

	count, maxTS, err = WardrobeStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("WardrobeStats: %v", err)
	}
	if count != 2 || maxTS == nil || maxTS.IsZero() {
		t.Fatalf("unexpected stats: count=%d ts=%v", count, maxTS)
	}
}
