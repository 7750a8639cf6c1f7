package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberRole(t *testing.T) {
	assert.Equal(t, "Member", RoleMember.String())
	assert.Equal(t, "Officer", RoleOfficer.String())
	assert.Equal(t, "Founder", RoleFounder.String())

	assert.True(t, RoleMember.Valid())
	assert.True(t, RoleFounder.Valid())
	assert.False(t, MemberRole(3).Valid())
	assert.False(t, MemberRole(-1).Valid())
}

func TestValidRating(t *testing.T) {
	assert.True(t, ValidRating(0))
	assert.True(t, ValidRating(10))
	assert.False(t, ValidRating(-1))
	assert.False(t, ValidRating(11))
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Josh", LastName: "Joshua"}
	assert.Equal(t, "Josh Joshua", u.FullName())
}
