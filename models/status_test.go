package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedActions_ApproveOnlyWhenPending(t *testing.T) {
	for _, s := range append(Statuses, Status("pending"), Status("")) {
		assert.Equal(t, s == StatusPending, AllowedActions(s).Has(ActionApprove), "status %q", s)
		assert.Equal(t, s == StatusPending, AllowedActions(s).Has(ActionReject), "status %q", s)
	}
}

func TestAllowedActions_CompleteOnlyWhenApproved(t *testing.T) {
	for _, s := range append(Statuses, Status("approved")) {
		assert.Equal(t, s == StatusApproved, AllowedActions(s).Has(ActionComplete), "status %q", s)
	}
}

func TestAllowedActions_CancelWhilePendingOrApproved(t *testing.T) {
	assert.True(t, AllowedActions(StatusPending).Has(ActionCancel))
	assert.True(t, AllowedActions(StatusApproved).Has(ActionCancel))
	assert.False(t, AllowedActions(StatusCompleted).Has(ActionCancel))
	assert.False(t, AllowedActions(StatusRejected).Has(ActionCancel))
	assert.False(t, AllowedActions(StatusCancelled).Has(ActionCancel))
}

func TestAllowedActions_TerminalStatesOnlyDelete(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Terminal())
		actions := AllowedActions(s)
		assert.Len(t, actions, 1)
		assert.True(t, actions.Has(ActionDelete))
	}
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
}

func TestConfirmationRules(t *testing.T) {
	assert.False(t, RequiresConfirmation(ActionApprove))
	assert.False(t, RequiresConfirmation(ActionComplete))
	assert.True(t, RequiresConfirmation(ActionReject))
	assert.True(t, RequiresConfirmation(ActionCancel))
	assert.True(t, RequiresConfirmation(ActionDelete))
	assert.True(t, Destructive(ActionDelete))
}

func TestResultStatus(t *testing.T) {
	s, ok := ResultStatus(ActionApprove)
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, s)

	s, ok = ResultStatus(ActionReject)
	assert.True(t, ok)
	assert.Equal(t, StatusRejected, s)

	s, ok = ResultStatus(ActionComplete)
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, s)

	_, ok = ResultStatus(ActionCancel)
	assert.False(t, ok)
	_, ok = ResultStatus(ActionDelete)
	assert.False(t, ok)
}
