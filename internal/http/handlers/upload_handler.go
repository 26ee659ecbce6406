// Image upload handler.
//
//   - POST /upload  (multipart form: "image" file + "userId" field)
//
// The route is mounted only when an image store is configured. The returned
// URL is what clients pass to /analyze-clothing afterwards.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UploadResponse carries the public URL of the stored image.
type UploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url" example:"https://cdn.example.com/wardrobe/u1/9f2c.jpg"`
}

// UploadImage godoc
// @ID          uploadImage
// @Summary     Upload a clothing photo
// @Description Stores the image and returns a public URL suitable for /analyze-clothing.
// @Tags        Wardrobe
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       image   formData  file    true  "Image file"
// @Param       userId  formData  string  true  "Owner identifier"
//
// @Success     200  {object}  handlers.UploadResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing image or userId"
// @Failure     413  {object}  handlers.ErrorResponse  "Image too large"
// @Failure     415  {object}  handlers.ErrorResponse  "File must be an image"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /upload [post]
func (h *Handlers) UploadImage(c *gin.Context) {
	userID := strings.TrimSpace(c.PostForm("userId"))
	fh, err := c.FormFile("image")
	if err != nil || userID == "" {
		fail(c, http.StatusBadRequest, msgMissingUploadFields)
		return
	}

	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		fail(c, http.StatusRequestEntityTooLarge, msgUploadTooLarge)
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		fail(c, http.StatusUnsupportedMediaType, msgUploadNotImage)
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusInternalServerError, msgUploadFailed)
		return
	}
	defer f.Close()

	url, err := h.uploads.Save(c.Request.Context(), userID, contentType, f)
	if err != nil {
		fail(c, http.StatusInternalServerError, msgUploadFailed)
		return
	}
	ok(c, http.StatusOK, UploadResponse{Success: true, URL: url})
}
