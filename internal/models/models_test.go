package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveRole(t *testing.T) {
	assert.Equal(t, RoleStudent, ResolveRole(nil), "missing row defaults to student")
	assert.Equal(t, RoleStudent, ResolveRole(&UserRole{Role: "proctor"}), "unknown role defaults to student")
	assert.Equal(t, RoleAdmin, ResolveRole(&UserRole{Role: RoleAdmin}))
	assert.Equal(t, RoleStudent, ResolveRole(&UserRole{Role: RoleStudent}))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleStudent.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("guest").Valid())
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	live := &Session{ExpiresAt: now.Add(time.Hour)}
	dead := &Session{ExpiresAt: now.Add(-time.Minute)}

	assert.False(t, live.Expired(now))
	assert.True(t, dead.Expired(now))
}

func TestVideoPatchEmpty(t *testing.T) {
	assert.True(t, VideoPatch{}.Empty())

	title := "Intro"
	assert.False(t, VideoPatch{Title: &title}.Empty())

	order := 0
	assert.False(t, VideoPatch{FolderOrder: &order}.Empty(), "explicit zero is a change")
}

func TestNewSessionUser(t *testing.T) {
	profile := &Profile{UserID: "u-1", Name: "Alice", Username: "alice"}

	user := NewSessionUser(profile, nil)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, RoleStudent, user.Role, "no role row resolves to student")

	admin := NewSessionUser(profile, &UserRole{Role: RoleAdmin})
	assert.Equal(t, RoleAdmin, admin.Role)
}
