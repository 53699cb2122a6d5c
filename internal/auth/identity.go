// Package auth models the identity asserted by the upstream gateway and the
// scope predicates that authorize requests against it.  This service never
// validates credentials itself: the gateway authenticates the caller and
// forwards the result in trusted headers, so the only job here is to parse
// those headers into a typed value and answer authorization questions.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Trusted header names set by the gateway.  They are never generated or
// rewritten by this service.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUsername = "X-Username"
	HeaderScopes   = "X-User-Scopes"
)

// ErrMissingIdentity is returned when a required identity header is absent.
// The gateway rejects unauthenticated traffic before it reaches us, so a
// missing header means a malformed request, not an authentication failure.
// Handlers translate this into 422, never 401.
var ErrMissingIdentity = errors.New("identity headers missing")

// CurrentUser is the identity of the caller for a single request.  It is
// built once at the transport boundary and passed explicitly through the
// call chain.
type CurrentUser struct {
	ID       uuid.UUID
	Username string
	Scopes   ScopeSet
}

// ScopeSet is a set of scope tokens.  Membership is exact token equality.
type ScopeSet map[string]struct{}

// ParseScopes splits a space-separated scope header into a set.  Unknown or
// duplicate tokens are harmless; an empty header yields an empty set.
func ParseScopes(raw string) ScopeSet {
	set := make(ScopeSet)
	for _, tok := range strings.Fields(raw) {
		set[tok] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given scope token.
func (s ScopeSet) Has(scope string) bool {
	_, ok := s[scope]
	return ok
}

// FromHeaders builds a CurrentUser from the three trusted header values.
// It fails when the user id or username is absent, or when the user id is
// not a UUID.
func FromHeaders(id, username, scopes string) (*CurrentUser, error) {
	if id == "" || username == "" {
		return nil, ErrMissingIdentity
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid %s header: %w", HeaderUserID, err)
	}
	return &CurrentUser{
		ID:       uid,
		Username: username,
		Scopes:   ParseScopes(scopes),
	}, nil
}
