package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchSanitized(t *testing.T) {
	patch := Patch{
		"userId":    "forced@b.com",
		"updatedAt": "1970-01-01T00:00:00Z",
		"gender":    "female",
		"tier":      2,
	}

	clean := patch.Sanitized("userId", "updatedAt")

	assert.Equal(t, Patch{"gender": "female", "tier": 2}, clean)
	// caller's map is untouched
	assert.Contains(t, patch, "userId")
	assert.Contains(t, patch, "updatedAt")
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	assert.True(t, Patch{"caseId": "x"}.Sanitized("caseId").IsEmpty())
	assert.False(t, Patch{"title": "x"}.IsEmpty())
}
