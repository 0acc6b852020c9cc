package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusCalculated, true},
		{StatusDraft, StatusSent, false},
		{StatusDraft, StatusCompleted, false},
		{StatusCalculated, StatusDraft, true},
		{StatusCalculated, StatusSent, true},
		{StatusCalculated, StatusCompleted, false},
		{StatusSent, StatusCompleted, true},
		{StatusSent, StatusDraft, false},
		{StatusSent, StatusCalculated, false},
		{StatusCompleted, StatusDraft, false},
		{StatusCompleted, StatusSent, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatusEditable(t *testing.T) {
	assert.True(t, StatusDraft.Editable())
	assert.True(t, StatusCalculated.Editable())
	assert.False(t, StatusSent.Editable())
	assert.False(t, StatusCompleted.Editable())
}
