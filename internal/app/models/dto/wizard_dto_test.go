package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBulkResultAddRowError(t *testing.T) {
	result := &BulkResult{}
	result.Created = 2

	result.AddRowError(4, "name and email are required")
	result.AddRowError(7, "duplicate email")

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 4, result.Errors[0].Row)
	assert.Equal(t, "name and email are required", result.Errors[0].Message)
	assert.Equal(t, 7, result.Errors[1].Row)
}
