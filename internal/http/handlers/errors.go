// Package handlers defines the client-facing error strings used across all
// API endpoints.
//
// The strings are part of the wire contract: clients branch on them (and on
// the HTTP status) for programmatic handling, so they are centralized here
// rather than inlined at call sites. Keep them short and free of internal
// detail; the operational log carries the full error.
package handlers

const (
	msgMissingIngestFields  = "Missing imageUrl or userId"
	msgMissingComposeFields = "Missing prompt or userId"
	msgMissingUserID        = "Missing userId"
	msgMissingDeleteFields  = "Missing itemId or userId"
	msgMissingUploadFields  = "Missing image or userId"

	msgAnalyzeFailed  = "Failed to analyze clothing"
	msgSaveItemFailed = "Failed to save clothing item"
	msgComposeFailed  = "Failed to generate outfit"
	msgEmptyWardrobe  = "No clothing items found in wardrobe"
	msgFetchFailed    = "Failed to fetch wardrobe"
	msgDeleteFailed   = "Failed to delete item"
	msgOutfitsFailed  = "Failed to fetch outfits"
	msgUploadFailed   = "Failed to upload image"
	msgUploadTooLarge = "Image too large"
	msgUploadNotImage = "File must be an image"

	// Router fallbacks, exported for use outside the handlers package.
	MsgRouteNotFound    = "Route not found"
	MsgMethodNotAllowed = "Method not allowed"
)
