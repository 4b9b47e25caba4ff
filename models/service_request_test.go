package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedStatusesByVariant(t *testing.T) {
	apiCreate := AllowedCreateStatuses(VariantAPI)
	assert.True(t, IsAllowedStatus(apiCreate, StatusInProgress))
	assert.False(t, IsAllowedStatus(apiCreate, StatusAccepted))
	assert.False(t, IsAllowedStatus(apiCreate, StatusCancelled))

	webCreate := AllowedCreateStatuses(VariantWeb)
	assert.True(t, IsAllowedStatus(webCreate, StatusAccepted))
	assert.False(t, IsAllowedStatus(webCreate, StatusInProgress))
	assert.False(t, IsAllowedStatus(webCreate, StatusRejected))

	webUpdate := AllowedUpdateStatuses(VariantWeb)
	assert.True(t, IsAllowedStatus(webUpdate, StatusRejected))
	assert.True(t, IsAllowedStatus(webUpdate, StatusCancelled))

	apiUpdate := AllowedUpdateStatuses(VariantAPI)
	assert.False(t, IsAllowedStatus(apiUpdate, StatusRejected))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from ServiceRequestStatus
		to   ServiceRequestStatus
		want bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, false},
		{StatusAccepted, StatusCompleted, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusPending, false},
		{StatusRejected, StatusPending, false},
		{StatusCancelled, StatusInProgress, false},
		{StatusCompleted, StatusCompleted, true}, // re-asserting is allowed
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}
