// Package inference wraps the hosted multimodal completion API behind a
// small client interface with two operations: classifying a clothing photo
// and composing an outfit from cataloged candidates.
//
// Both operations are synchronous, single request/single response, with no
// retry. The model's output is free text that should contain a JSON object;
// extraction and decoding live in extract.go. Callers must treat every
// decoded field as untrusted: no schema validation happens here.
package inference

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sentinel errors for upstream inference failures. Handlers map both to an
// internal-error response; services log the full detail.
var (
	// ErrNoResponse indicates the model returned empty content.
	ErrNoResponse = errors.New("no response from model")

	// ErrMalformedResponse indicates the model output contained no JSON
	// object span, or the span did not parse as one.
	ErrMalformedResponse = errors.New("malformed model response")
)

// Classification is the structured result of classifying a clothing photo.
// Fields mirror the five keys the instruction asks the model for.
type Classification struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Candidate is a cataloged item reduced to the fields the stylist model
// needs to make a selection.
type Candidate struct {
	ID          string
	Category    string
	Name        string
	Color       string
	Description string
}

// OutfitSelection is the structured result of an outfit composition call.
// ItemIDs are NOT guaranteed to be a subset of the candidates that were
// offered; the caller must filter them against its catalog.
type OutfitSelection struct {
	ItemIDs     []string `json:"outfit"`
	Explanation string   `json:"explanation"`
}

// Client is the inference contract consumed by the service layer.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type Client interface {
	// Classify submits one completion request carrying the classification
	// instruction plus the image at imageURL and decodes the JSON object
	// embedded in the reply.
	Classify(ctx context.Context, imageURL string) (*Classification, error)

	// ComposeOutfit asks the stylist model to select 3-5 of the given
	// candidates for the free-text occasion prompt.
	ComposeOutfit(ctx context.Context, prompt string, candidates []Candidate) (*OutfitSelection, error)
}

// Prometheus instrumentation for upstream calls. Labels stay low-cardinality:
// operation is "classify" or "compose", outcome is "ok", "no_response",
// "malformed" or "error".
var (
	inferenceReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inference_requests_total",
			Help: "Total number of upstream inference requests.",
		},
		[]string{"operation", "outcome"},
	)

	inferenceLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "inference_request_duration_seconds",
			Help: "Duration of upstream inference requests in seconds.",
			// Model calls are slow compared to local HTTP work.
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(inferenceReqs, inferenceLat)
}

// observe records one upstream call for dashboards. err may be nil.
func observe(operation string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNoResponse):
		outcome = "no_response"
	case errors.Is(err, ErrMalformedResponse):
		outcome = "malformed"
	default:
		outcome = "error"
	}
	inferenceReqs.WithLabelValues(operation, outcome).Inc()
	inferenceLat.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
