// Gemini-backed implementation of the inference Client.
//
// The vision operation downloads the image bytes first (the API takes inline
// image data, not URLs) and sends them alongside the fixed classification
// instruction. Both operations pin the response MIME type to JSON; the
// extraction scan in extract.go remains as a guard for prose-wrapped output.
package inference

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tbourn/go-wardrobe-backend/internal/config"
)

// maxImageBytes caps how much of a clothing photo is read into memory.
const maxImageBytes = 20 << 20

// GeminiClient implements Client against the Gemini API.
type GeminiClient struct {
	genai           *genai.Client
	visionModel     string
	stylistModel    string
	maxOutputTokens int32
	httpc           *http.Client
}

// compile-time interface check
var _ Client = (*GeminiClient)(nil)

// NewGemini constructs a Gemini-backed inference client from configuration.
// The returned client owns the underlying API connection; call Close when
// the process shuts down.
func NewGemini(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		genai:           gc,
		visionModel:     cfg.VisionModel,
		stylistModel:    cfg.StylistModel,
		maxOutputTokens: cfg.MaxOutputTokens,
		httpc:           &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Close releases the underlying API connection.
func (c *GeminiClient) Close() error { return c.genai.Close() }

// Classify downloads the image at imageURL and submits it with the fixed
// classification instruction. See Client for the error contract.
func (c *GeminiClient) Classify(ctx context.Context, imageURL string) (_ *Classification, err error) {
	defer func(start time.Time) { observe("classify", start, err) }(time.Now())

	data, format, err := c.fetchImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	model := c.genai.GenerativeModel(c.visionModel)
	model.SetMaxOutputTokens(c.maxOutputTokens)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx,
		genai.Text(classifyInstruction),
		genai.ImageData(format, data),
	)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	var out Classification
	if err = decodeObject(textFromResponse(resp), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ComposeOutfit asks the stylist model to pick items for the occasion
// prompt. See Client for the error contract.
func (c *GeminiClient) ComposeOutfit(ctx context.Context, prompt string, candidates []Candidate) (_ *OutfitSelection, err error) {
	defer func(start time.Time) { observe("compose", start, err) }(time.Now())

	model := c.genai.GenerativeModel(c.stylistModel)
	model.SetMaxOutputTokens(c.maxOutputTokens)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(stylistSystemInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buildOutfitPrompt(prompt, candidates)))
	if err != nil {
		return nil, fmt.Errorf("compose outfit: %w", err)
	}

	var out OutfitSelection
	if err = decodeObject(textFromResponse(resp), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// fetchImage downloads the photo and reports the subtype ("jpeg", "png", …)
// expected by the inline-data part.
func (c *GeminiClient) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build image request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "image/") {
		ct = http.DetectContentType(data)
	}
	if !strings.HasPrefix(ct, "image/") {
		return nil, "", fmt.Errorf("fetch image: not an image (%s)", ct)
	}
	format := strings.TrimPrefix(ct, "image/")
	if i := strings.IndexByte(format, ';'); i >= 0 {
		format = strings.TrimSpace(format[:i])
	}
	return data, format, nil
}

// textFromResponse concatenates the text parts of the first candidate.
// A nil response, empty candidate list, or non-text parts yield "".
func textFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
