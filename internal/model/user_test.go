package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()

	assert.Len(t, a, IDLength)
	assert.True(t, ValidID(a))
	assert.NotEqual(t, a, b)
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"6690ddb69350359e504b915f", true},
		{"6690DDB69350359E504B915F", false},
		{"6690ddb69350359e504b915", false},
		{"6690ddb69350359e504b915fa", false},
		{"6690ddb69350359e504b915z", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidID(tt.id), tt.id)
	}
}

func TestUser_JSONOmitsPassword(t *testing.T) {
	u := User{ID: NewID(), Username: "alice1234", Email: "a@x.com", PasswordHash: "$2a$10$secret", Status: true}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"status":true`)
	assert.Contains(t, string(data), `"createdAt"`)
}

func TestUserPatch_Empty(t *testing.T) {
	assert.True(t, UserPatch{}.Empty())
	status := false
	assert.False(t, UserPatch{Status: &status}.Empty())
}
