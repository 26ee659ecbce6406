// Outfit HTTP handlers.
//
//   - POST /generate-outfit  (compose an outfit from the user's catalog)
//   - GET  /outfits          (list previously saved outfits)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wardrobe-backend/internal/domain"
	"github.com/tbourn/go-wardrobe-backend/internal/services"
)

// GenerateOutfitRequest is the JSON payload for outfit composition.
type GenerateOutfitRequest struct {
	// Prompt is the free-text occasion, e.g. "casual friday at the office".
	Prompt string `json:"prompt" example:"smart casual dinner downtown"`
	// UserID is the caller-supplied opaque owner identifier.
	UserID string `json:"userId" example:"user123"`
}

// GenerateOutfitResponse carries the composed outfit. Outfit is never null:
// an empty selection serializes as []. OutfitID is present only when the
// best-effort archive succeeded.
type GenerateOutfitResponse struct {
	Success     bool                  `json:"success"`
	Outfit      []domain.ClothingItem `json:"outfit"`
	Explanation string                `json:"explanation"`
	OutfitID    string                `json:"outfitId,omitempty"`
}

// ListOutfitsResponse wraps a user's saved outfits.
type ListOutfitsResponse struct {
	Success bool            `json:"success"`
	Data    []domain.Outfit `json:"data"`
}

// GenerateOutfit godoc
// @ID          generateOutfit
// @Summary     Compose an outfit for an occasion
// @Description Selects items from the user's catalog that match the prompt and explains the choice. The result is archived best-effort; a failed archive does not fail the request.
// @Tags        Outfits
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.GenerateOutfitRequest  true  "Occasion prompt and owner"
//
// @Success     200  {object}  handlers.GenerateOutfitResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing prompt or userId"
// @Failure     404  {object}  handlers.ErrorResponse  "No clothing items found in wardrobe"
// @Failure     500  {object}  handlers.ErrorResponse  "Composition failure"
// @Router      /generate-outfit [post]
func (h *Handlers) GenerateOutfit(c *gin.Context) {
	var req GenerateOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, msgMissingComposeFields)
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	userID := strings.TrimSpace(req.UserID)
	if prompt == "" || userID == "" {
		fail(c, http.StatusBadRequest, msgMissingComposeFields)
		return
	}

	res, err := h.outfits.Compose(c.Request.Context(), userID, prompt)
	if err != nil {
		if errors.Is(err, services.ErrEmptyWardrobe) {
			fail(c, http.StatusNotFound, msgEmptyWardrobe)
			return
		}
		fail(c, http.StatusInternalServerError, msgComposeFailed)
		return
	}

	outfit := res.Items
	if outfit == nil {
		outfit = []domain.ClothingItem{}
	}
	ok(c, http.StatusOK, GenerateOutfitResponse{
		Success:     true,
		Outfit:      outfit,
		Explanation: res.Explanation,
		OutfitID:    res.OutfitID,
	})
}

// ListOutfits godoc
// @ID          listOutfits
// @Summary     List a user's saved outfits
// @Description Returns previously archived outfits for userId, newest first.
// @Tags        Outfits
// @Produce     json
//
// @Param       userId  query  string  true  "Owner identifier"
//
// @Success     200  {object}  handlers.ListOutfitsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing userId"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /outfits [get]
func (h *Handlers) ListOutfits(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		fail(c, http.StatusBadRequest, msgMissingUserID)
		return
	}

	outfits, err := h.outfits.ListOutfits(c.Request.Context(), userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, msgOutfitsFailed)
		return
	}
	if outfits == nil {
		outfits = []domain.Outfit{}
	}
	ok(c, http.StatusOK, ListOutfitsResponse{Success: true, Data: outfits})
}
