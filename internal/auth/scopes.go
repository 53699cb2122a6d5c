package auth

import "github.com/google/uuid"

// Scope tokens understood by this service, conventionally resource:action for
// owners and admin:resource[:action] for platform administrators.
const (
	ScopeVenuesRead     = "venues:read"
	ScopeVenuesMe       = "venues:me"
	ScopeVenuesWrite    = "venues:write"
	ScopeVenuesDelete   = "venues:delete"
	ScopeVenuesImages   = "venues:images"
	ScopeVenuesSchedule = "venues:schedule"

	ScopeAdminVenues       = "admin:venues"
	ScopeAdminVenuesRead   = "admin:venues:read"
	ScopeAdminVenuesWrite  = "admin:venues:write"
	ScopeAdminVenuesDelete = "admin:venues:delete"
)

// IsAdmin reports whether the caller holds the top-level venue admin scope.
func IsAdmin(u *CurrentUser) bool {
	return u.Scopes.Has(ScopeAdminVenues)
}

// CanAdminVenues authorizes administrative venue operations such as status
// changes.  Ownership is irrelevant.
func CanAdminVenues(u *CurrentUser) bool {
	return u.Scopes.Has(ScopeAdminVenuesWrite) || IsAdmin(u)
}

// CanWriteVenue authorizes edits to the venue owned by ownerID: the owner
// with the write scope, or an admin.
func CanWriteVenue(u *CurrentUser, ownerID uuid.UUID) bool {
	if u.ID == ownerID && u.Scopes.Has(ScopeVenuesWrite) {
		return true
	}
	return u.Scopes.Has(ScopeAdminVenuesWrite) || IsAdmin(u)
}

// CanDeleteVenue authorizes venue deletion: the owner with the delete scope,
// or an admin with the delete scope or the top-level admin scope.
func CanDeleteVenue(u *CurrentUser, ownerID uuid.UUID) bool {
	if u.ID == ownerID && u.Scopes.Has(ScopeVenuesDelete) {
		return true
	}
	return u.Scopes.Has(ScopeAdminVenuesDelete) || IsAdmin(u)
}

// CanManageImages authorizes image mutations on the venue owned by ownerID.
func CanManageImages(u *CurrentUser, ownerID uuid.UUID) bool {
	if u.ID == ownerID && u.Scopes.Has(ScopeVenuesImages) {
		return true
	}
	return u.Scopes.Has(ScopeAdminVenuesWrite) || IsAdmin(u)
}

// CanManageSchedule authorizes unavailability mutations on the venue owned
// by ownerID.
func CanManageSchedule(u *CurrentUser, ownerID uuid.UUID) bool {
	if u.ID == ownerID && u.Scopes.Has(ScopeVenuesSchedule) {
		return true
	}
	return u.Scopes.Has(ScopeAdminVenuesWrite) || IsAdmin(u)
}
