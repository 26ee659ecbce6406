// Package services – WardrobeService
//
// This file implements WardrobeService, the application-level component that
// owns the clothing catalog: ingesting a photo through the vision model,
// listing a user's items, and deleting an item.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include the user identifier. Upstream inference failures are logged with
// full detail here; handlers return only a short human-readable string.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-wardrobe-backend/internal/domain"
	"github.com/tbourn/go-wardrobe-backend/internal/inference"
	"github.com/tbourn/go-wardrobe-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WardrobeService coordinates classification and catalog persistence.
type WardrobeService struct {
	DB *gorm.DB
	AI inference.Client

	// NameLocale configures title casing of AI-provided item names.
	NameLocale language.Tag
}

// Ingest classifies the image at imageURL and persists the result as a new
// ClothingItem owned by userID.
//
// Failure semantics:
//   - A classify failure (transport error, empty or unparsable model output)
//     returns ErrClassification; nothing is persisted and the request is NOT
//     retried here.
//   - A category outside the closed enumeration returns ErrInvalidCategory;
//     the classification is discarded.
//   - A store failure returns ErrPersistence; the already-performed
//     classification is discarded with no compensating action. There is no
//     idempotency key, so a client retry re-invokes classification and may
//     produce a duplicate item with different derived fields.
func (s *WardrobeService) Ingest(ctx context.Context, userID, imageURL string) (*domain.ClothingItem, error) {
	tr := otel.Tracer("services/WardrobeService")
	ctx, span := tr.Start(ctx, "Ingest",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	analysis, err := s.AI.Classify(ctx, imageURL)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("image_url", imageURL).
			Msg("clothing classification failed")
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	category := domain.NormalizeCategory(analysis.Category)
	if !domain.ValidCategory(category) {
		log.Error().Str("user_id", userID).Str("category", analysis.Category).
			Msg("classifier returned category outside the enumeration")
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, analysis.Category)
	}

	item := &domain.ClothingItem{
		UserID:      userID,
		Name:        s.displayName(analysis.Name),
		Category:    category,
		Color:       strings.TrimSpace(analysis.Color),
		Description: strings.TrimSpace(analysis.Description),
		ImageURL:    imageURL,
		AITags:      analysis.Tags,
	}

	created, err := repo.CreateClothingItem(ctx, s.DB, item)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("saving clothing item failed")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}

// List returns the user's catalog ordered by creation time descending.
func (s *WardrobeService) List(ctx context.Context, userID string) ([]domain.ClothingItem, error) {
	tr := otel.Tracer("services/WardrobeService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	items, err := repo.ListClothingItems(ctx, s.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return items, nil
}

// Delete removes the item with itemID from userID's catalog. A delete that
// matches nothing (unknown item, or an item owned by another user) is a
// silent no-op: it reports success and changes nothing.
func (s *WardrobeService) Delete(ctx context.Context, userID, itemID string) error {
	tr := otel.Tracer("services/WardrobeService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("item.id", itemID),
		),
	)
	defer span.End()

	affected, err := repo.DeleteClothingItem(ctx, s.DB, itemID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if affected == 0 {
		log.Debug().Str("user_id", userID).Str("item_id", itemID).
			Msg("delete matched no rows")
	}
	return nil
}

// displayName normalizes an AI-provided item name for display: whitespace
// trimmed and title-cased in the configured locale. An empty name falls back
// to a generic placeholder so the catalog row stays renderable.
func (s *WardrobeService) displayName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "Clothing Item"
	}
	return cases.Title(s.nameLocaleOrDefault(), cases.NoLower).String(name)
}

// nameLocaleOrDefault returns the configured locale for casing or English if unset.
func (s *WardrobeService) nameLocaleOrDefault() language.Tag {
	if s.NameLocale == language.Und {
		return language.English
	}
	return s.NameLocale
}
