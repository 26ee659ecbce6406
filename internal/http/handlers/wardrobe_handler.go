// Wardrobe HTTP handlers.
//
// This file exposes REST endpoints for the clothing catalog:
//   - POST   /analyze-clothing  (classify an uploaded photo and catalog it)
//   - GET    /wardrobe          (list a user's items, ETag support)
//   - DELETE /wardrobe          (remove one item, scoped to the owner)
//
// Handlers are transport-thin: they validate presence of the required
// fields BEFORE any external call, delegate to the wardrobe service, and
// translate sentinel errors into the uniform response envelope.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-wardrobe-backend/internal/domain"
	"github.com/tbourn/go-wardrobe-backend/internal/repo"
	"github.com/tbourn/go-wardrobe-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// WardrobeService defines catalog operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type WardrobeService interface {
	// Ingest classifies the image and persists the resulting item.
	Ingest(ctx context.Context, userID, imageURL string) (*domain.ClothingItem, error)
	// List returns the user's items, newest first.
	List(ctx context.Context, userID string) ([]domain.ClothingItem, error)
	// Delete removes one item scoped by (itemID, userID); no-op when
	// nothing matches.
	Delete(ctx context.Context, userID, itemID string) error
}

// OutfitService defines composition operations consumed by HTTP handlers.
type OutfitService interface {
	// Compose generates an outfit for the prompt from the user's catalog.
	Compose(ctx context.Context, userID, prompt string) (*services.OutfitResult, error)
	// ListOutfits returns the user's saved outfits, newest first.
	ListOutfits(ctx context.Context, userID string) ([]domain.Outfit, error)
}

// ImageStore persists raw image bytes and returns a public URL for them.
type ImageStore interface {
	Save(ctx context.Context, userID, contentType string, r io.Reader) (string, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the wardrobe, outfits, and uploads.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	wardrobe WardrobeService
	outfits  OutfitService

	// uploads may be nil; the upload route is only mounted when an image
	// store is configured.
	uploads        ImageStore
	maxUploadBytes int64
}

// New constructs and returns a Handlers instance bound to the given services.
func New(wardrobe WardrobeService, outfits OutfitService, uploads ImageStore, maxUploadBytes int64) *Handlers {
	return &Handlers{
		wardrobe:       wardrobe,
		outfits:        outfits,
		uploads:        uploads,
		maxUploadBytes: maxUploadBytes,
	}
}

//
// DTOs
//

// AnalyzeClothingRequest is the JSON payload for cataloging a photo.
type AnalyzeClothingRequest struct {
	// ImageURL is a dereferenceable URL of the clothing photo.
	ImageURL string `json:"imageUrl" example:"https://cdn.example.com/wardrobe/u1/jacket.jpg"`
	// UserID is the caller-supplied opaque owner identifier.
	UserID string `json:"userId" example:"user123"`
}

// AnalyzeClothingResponse wraps the newly cataloged item.
type AnalyzeClothingResponse struct {
	Success bool                 `json:"success"`
	Data    *domain.ClothingItem `json:"data"`
}

// ListWardrobeResponse wraps a user's catalog.
type ListWardrobeResponse struct {
	Success bool                  `json:"success"`
	Data    []domain.ClothingItem `json:"data"`
}

// DeleteResponse acknowledges a delete.
type DeleteResponse struct {
	Success bool `json:"success"`
}

//
// Handlers
//

// AnalyzeClothing godoc
// @ID          analyzeClothing
// @Summary     Catalog a clothing photo
// @Description Classifies the image with the vision model and persists the resulting item.
// @Tags        Wardrobe
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AnalyzeClothingRequest  true  "Image URL and owner"
//
// @Success     200  {object}  handlers.AnalyzeClothingResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing imageUrl or userId"
// @Failure     500  {object}  handlers.ErrorResponse  "Classification or persistence failure"
// @Router      /analyze-clothing [post]
func (h *Handlers) AnalyzeClothing(c *gin.Context) {
	var req AnalyzeClothingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, msgMissingIngestFields)
		return
	}
	imageURL := strings.TrimSpace(req.ImageURL)
	userID := strings.TrimSpace(req.UserID)
	if imageURL == "" || userID == "" {
		fail(c, http.StatusBadRequest, msgMissingIngestFields)
		return
	}

	item, err := h.wardrobe.Ingest(c.Request.Context(), userID, imageURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPersistence):
			fail(c, http.StatusInternalServerError, msgSaveItemFailed)
		default:
			// classification failures, invalid categories, anything else
			fail(c, http.StatusInternalServerError, msgAnalyzeFailed)
		}
		return
	}

	ok(c, http.StatusOK, AnalyzeClothingResponse{Success: true, Data: item})
}

// ListWardrobe godoc
// @ID          listWardrobe
// @Summary     List a user's wardrobe
// @Description Returns all cataloged items for userId, newest first. Supports weak ETag via If-None-Match.
// @Tags        Wardrobe
// @Produce     json
//
// @Param       userId         query   string  true   "Owner identifier"
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
//
// @Success     200  {object}  handlers.ListWardrobeResponse
// @Header      200  {string}  ETag  "Weak ETag for current catalog state"
// @Success     304  {string}  string  "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Missing userId"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /wardrobe [get]
func (h *Handlers) ListWardrobe(c *gin.Context) {
	ctx := c.Request.Context()
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		fail(c, http.StatusBadRequest, msgMissingUserID)
		return
	}

	// ETag pre-check (best effort).
	if db := h.wardrobeDB(); db != nil {
		count, maxTS, err := repo.WardrobeStats(ctx, db, userID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"wardrobe:%s:%d:%d"`, userID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.wardrobe.List(ctx, userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if items == nil {
		items = []domain.ClothingItem{}
	}
	ok(c, http.StatusOK, ListWardrobeResponse{Success: true, Data: items})
}

// DeleteClothingItem godoc
// @ID          deleteClothingItem
// @Summary     Remove an item from the wardrobe
// @Description Deletes the item scoped by itemId AND userId. A non-matching delete affects zero rows and still reports success.
// @Tags        Wardrobe
// @Produce     json
//
// @Param       itemId  query  string  true  "Item identifier"
// @Param       userId  query  string  true  "Owner identifier"
//
// @Success     200  {object}  handlers.DeleteResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing itemId or userId"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /wardrobe [delete]
func (h *Handlers) DeleteClothingItem(c *gin.Context) {
	itemID := strings.TrimSpace(c.Query("itemId"))
	userID := strings.TrimSpace(c.Query("userId"))
	if itemID == "" || userID == "" {
		fail(c, http.StatusBadRequest, msgMissingDeleteFields)
		return
	}

	if err := h.wardrobe.Delete(c.Request.Context(), userID, itemID); err != nil {
		fail(c, http.StatusInternalServerError, msgDeleteFailed)
		return
	}
	ok(c, http.StatusOK, DeleteResponse{Success: true})
}

// wardrobeDB exposes the concrete service's DB handle for the ETag
// pre-check. Returns nil when the handler is wired to a stub.
func (h *Handlers) wardrobeDB() *gorm.DB {
	if svc, okSvc := h.wardrobe.(*services.WardrobeService); okSvc {
		return svc.DB
	}
	return nil
}
