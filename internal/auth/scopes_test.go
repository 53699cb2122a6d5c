package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func user(id uuid.UUID, scopes ...string) *CurrentUser {
	set := make(ScopeSet, len(scopes))
	for _, s := range scopes {
		set[s] = struct{}{}
	}
	return &CurrentUser{ID: id, Username: "tester", Scopes: set}
}

func TestIsAdmin(t *testing.T) {
	id := uuid.New()
	assert.True(t, IsAdmin(user(id, ScopeAdminVenues)))
	assert.False(t, IsAdmin(user(id, ScopeAdminVenuesWrite)))
	assert.False(t, IsAdmin(user(id)))
}

func TestCanWriteVenue(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name string
		u    *CurrentUser
		want bool
	}{
		{"owner with write scope", user(owner, ScopeVenuesWrite), true},
		{"owner without write scope", user(owner), false},
		{"owner with unrelated scope", user(owner, ScopeVenuesRead), false},
		{"stranger with write scope", user(stranger, ScopeVenuesWrite), false},
		{"stranger with admin write", user(stranger, ScopeAdminVenuesWrite), true},
		{"stranger with top-level admin", user(stranger, ScopeAdminVenues), true},
		{"no scopes at all", user(stranger), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanWriteVenue(tt.u, owner))
		})
	}
}

func TestCanDeleteVenue(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	assert.True(t, CanDeleteVenue(user(owner, ScopeVenuesDelete), owner))
	assert.False(t, CanDeleteVenue(user(owner, ScopeVenuesWrite), owner))
	assert.True(t, CanDeleteVenue(user(stranger, ScopeAdminVenuesDelete), owner))
	assert.True(t, CanDeleteVenue(user(stranger, ScopeAdminVenues), owner))
	// Admin write alone does not grant deletion.
	assert.False(t, CanDeleteVenue(user(stranger, ScopeAdminVenuesWrite), owner))
}

func TestCanManageImagesAndSchedule(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	assert.True(t, CanManageImages(user(owner, ScopeVenuesImages), owner))
	assert.False(t, CanManageImages(user(owner, ScopeVenuesWrite), owner))
	assert.True(t, CanManageImages(user(stranger, ScopeAdminVenuesWrite), owner))

	assert.True(t, CanManageSchedule(user(owner, ScopeVenuesSchedule), owner))
	assert.False(t, CanManageSchedule(user(stranger, ScopeVenuesSchedule), owner))
	assert.True(t, CanManageSchedule(user(stranger, ScopeAdminVenues), owner))
}

func TestCanAdminVenues(t *testing.T) {
	id := uuid.New()
	assert.True(t, CanAdminVenues(user(id, ScopeAdminVenuesWrite)))
	assert.True(t, CanAdminVenues(user(id, ScopeAdminVenues)))
	assert.False(t, CanAdminVenues(user(id, ScopeVenuesWrite)))
}
