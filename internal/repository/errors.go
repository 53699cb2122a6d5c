// Package repository contains the data access layer, separated from HTTP
// handlers.  This file defines the sentinel errors shared across the
// repositories so handlers can translate failures into HTTP statuses
// without inspecting driver errors.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue cannot be found.
var ErrVenueNotFound = errors.New("venue not found")

// ErrImageNotFound is returned when an image does not exist under the
// requested venue.
var ErrImageNotFound = errors.New("image not found")

// ErrUnavailabilityNotFound is returned when an unavailability window does
// not exist under the requested venue.
var ErrUnavailabilityNotFound = errors.New("unavailability not found")
