// Package services defines the business logic for wardrobe cataloguing and
// outfit composition. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrClassification indicates the vision model call failed: the request
	// errored, the reply was empty, or the reply carried no parsable JSON
	// object. The classification is never retried.
	ErrClassification = errors.New("classification failed")

	// ErrInvalidCategory is returned when the classifier produced a category
	// outside the closed enumeration. The item is not persisted.
	ErrInvalidCategory = errors.New("classifier returned unknown category")

	// ErrPersistence indicates a store operation failed. For ingest this is
	// fatal and the classification result is discarded.
	ErrPersistence = errors.New("persistence failed")

	// ErrEmptyWardrobe is returned when a composition request finds no
	// catalog items for the user.
	ErrEmptyWardrobe = errors.New("no clothing items in wardrobe")

	// ErrComposition indicates the stylist model call failed. Same upstream
	// failure modes as ErrClassification.
	ErrComposition = errors.New("outfit composition failed")
)
