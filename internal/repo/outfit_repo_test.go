package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-wardrobe-backend/internal/domain"
)

func TestCreateOutfit_PersistsAndRoundTrips(t *testing.T) {
	db := newRepoDB(t, &domain.Outfit{})

	o, err := CreateOutfit(context.Background(), db, "u1", "gym day",
		[]string{"id-1", "id-2"},
		[]string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"},
	)
	if err != nil {
		t.Fatalf("CreateOutfit: %v", err)
	}
	if o.ID == "" || o.UserID != "u1" || o.Prompt != "gym day" {
		t.Fatalf("unexpected Outfit fields: %+v", o)
	}

	var got domain.Outfit
	if err := db.First(&got, "id = ?", o.ID).Error; err != nil {
		t.Fatalf("load created outfit: %v", err)
	}
	if len(got.ClothingItemIDs) != 2 || got.ClothingItemIDs[1] != "id-2" {
		t.Fatalf("item ids did not round-trip: %v", got.ClothingItemIDs)
	}
	if len(got.ImageURLs) != 2 {
		t.Fatalf("image urls did not round-trip: %v", got.ImageURLs)
	}
}

func TestListOutfits_OrderDescendingAndFilter(t *testing.T) {
	db := newRepoDB(t, &domain.Outfit{})

	mk := func(userID, prompt string, at time.Time) {
		t.Helper()
		o := &domain.Outfit{
			UserID:          userID,
			Prompt:          prompt,
			ClothingItemIDs: []string{"x"},
			CreatedAt:       at,
		}
		// CreateOutfit stamps time.Now; seed directly for deterministic order.
		o.ID = prompt + "-" + userID
		if err := db.Create(o).Error; err != nil {
			t.Fatalf("seed outfit: %v", err)
		}
	}

	t1 := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	mk("u1", "old", t1)
	mk("u1", "new", t1.Add(time.Hour))
	mk("u2", "other", t1.Add(2*time.Hour))

	outfits, err := ListOutfits(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("ListOutfits: %v", err)
	}
	if len(outfits) != 2 {
		t.Fatalf("expected 2 outfits for u1, got %d", len(outfits))
	}
	if outfits[0].Prompt != "new" || outfits[1].Prompt != "old" {
		t.Fatalf("wrong order: %q, %q", outfits[0].Prompt, outfits[1].Prompt)
	}
}

func TestCreateOutfit_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	o, err := CreateOutfit(context.Background(), db, "u1", "p", nil, nil)
	if err == nil || o != nil {
		t.Fatalf("expected error creating without table, got outfit=%v err=%v", o, err)
	}
}
