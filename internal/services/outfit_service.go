// Package services – OutfitService
//
// This file implements OutfitService, which turns a free-text occasion
// prompt plus the user's catalog into an outfit via the stylist model.
//
// Persistence policy ("best-effort side record"): the computed outfit is the
// primary deliverable of Compose; archiving it as an Outfit row is
// secondary. A save failure is logged and swallowed, the caller still
// receives the outfit, and only the saved-record ID is absent. This
// asymmetry with ingest (where a store failure is fatal) is deliberate.
package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-wardrobe-backend/internal/domain"
	"github.com/tbourn/go-wardrobe-backend/internal/inference"
	"github.com/tbourn/go-wardrobe-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OutfitService coordinates outfit composition and best-effort archiving.
type OutfitService struct {
	DB *gorm.DB
	AI inference.Client
}

// OutfitResult is the outcome of a composition call: the resolved catalog
// items in catalog order, the stylist's explanation passed through verbatim,
// and the saved Outfit row ID when the best-effort save succeeded.
type OutfitResult struct {
	Items       []domain.ClothingItem
	Explanation string
	OutfitID    string
}

// Compose loads userID's catalog, asks the stylist model to select items for
// the prompt, resolves the returned IDs against the catalog, and archives
// the result best-effort.
//
// Semantics:
//   - An empty catalog (or a catalog fetch failure) returns ErrEmptyWardrobe
//     before any model call.
//   - A stylist failure returns ErrComposition.
//   - Returned IDs are filtered by set membership against the catalog;
//     unknown IDs are silently dropped. Zero matches is NOT an error: the
//     caller receives an empty item list with the explanation intact.
//   - The Outfit row is written best-effort (see package comment).
func (s *OutfitService) Compose(ctx context.Context, userID, prompt string) (*OutfitResult, error) {
	tr := otel.Tracer("services/OutfitService")
	ctx, span := tr.Start(ctx, "Compose",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	items, err := repo.ListClothingItems(ctx, s.DB, userID)
	if err != nil || len(items) == 0 {
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("loading wardrobe for composition failed")
		}
		return nil, ErrEmptyWardrobe
	}

	candidates := make([]inference.Candidate, 0, len(items))
	for _, it := range items {
		candidates = append(candidates, inference.Candidate{
			ID:          it.ID,
			Category:    it.Category,
			Name:        it.Name,
			Color:       it.Color,
			Description: it.Description,
		})
	}

	sel, err := s.AI.ComposeOutfit(ctx, prompt, candidates)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("outfit composition failed")
		return nil, fmt.Errorf("%w: %v", ErrComposition, err)
	}

	// Resolve the model's IDs by set membership; catalog order is kept and
	// IDs outside the catalog are dropped without raising an error.
	selected := make(map[string]struct{}, len(sel.ItemIDs))
	for _, id := range sel.ItemIDs {
		selected[id] = struct{}{}
	}
	matched := make([]domain.ClothingItem, 0, len(sel.ItemIDs))
	for _, it := range items {
		if _, ok := selected[it.ID]; ok {
			matched = append(matched, it)
		}
	}
	if len(matched) < len(sel.ItemIDs) {
		log.Warn().Str("user_id", userID).
			Int("returned", len(sel.ItemIDs)).
			Int("matched", len(matched)).
			Msg("stylist returned ids outside the catalog")
	}

	result := &OutfitResult{
		Items:       matched,
		Explanation: sel.Explanation,
	}
	result.OutfitID = s.saveBestEffort(ctx, userID, prompt, matched)
	return result, nil
}

// ListOutfits returns the user's saved outfits ordered by creation time
// descending.
func (s *OutfitService) ListOutfits(ctx context.Context, userID string) ([]domain.Outfit, error) {
	tr := otel.Tracer("services/OutfitService")
	ctx, span := tr.Start(ctx, "ListOutfits",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	outfits, err := repo.ListOutfits(ctx, s.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return outfits, nil
}

// saveBestEffort archives the composition as an Outfit row and returns its
// ID, or "" when the save fails. Failures are logged, never propagated.
func (s *OutfitService) saveBestEffort(ctx context.Context, userID, prompt string, matched []domain.ClothingItem) string {
	itemIDs := make([]string, 0, len(matched))
	imageURLs := make([]string, 0, len(matched))
	for _, it := range matched {
		itemIDs = append(itemIDs, it.ID)
		imageURLs = append(imageURLs, it.ImageURL)
	}

	o, err := repo.CreateOutfit(ctx, s.DB, userID, prompt, itemIDs, imageURLs)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("saving outfit failed")
		return ""
	}
	return o.ID
}
