package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsValidID(t *testing.T) {
	valid := []string{
		uuid.NewString(),
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
		"00000000-0000-0000-0000-000000000000",
	}
	for _, id := range valid {
		assert.True(t, IsValidID(id), id)
	}

	invalid := []string{
		"",
		"not-a-uuid",
		"123",
		"123e4567e89b12d3a456426614174000",
		"{123e4567-e89b-12d3-a456-426614174000}",
		"urn:uuid:123e4567-e89b-12d3-a456-426614174000",
		"123e4567-e89b-12d3-a456-42661417400g",
		"123e4567-e89b-12d3-a456_426614174000",
		"123e4567-e89b-12d3-a456-4266141740000",
		" 123e4567-e89b-12d3-a456-42661417400",
	}
	for _, id := range invalid {
		assert.False(t, IsValidID(id), id)
	}
}
