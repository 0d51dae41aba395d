package utils

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID()
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestNewID_FallbackBranch(t *testing.T) {
	orig := newUUIDv7
	t.Cleanup(func() { newUUIDv7 = orig })

	newUUIDv7 = func() (uuid.UUID, error) {
		return uuid.Nil, errors.New("v7 failed")
	}
	id := NewID()
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, uuid.Version(4), id.Version())
}

func TestParseID(t *testing.T) {
	want := uuid.New()
	got, ok := ParseID(want.String())
	assert.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = ParseID("not-a-uuid")
	assert.False(t, ok)

	_, ok = ParseID(uuid.Nil.String())
	assert.False(t, ok)
}
