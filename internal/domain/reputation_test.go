package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gadict/internal/domain/models"
)

func TestApplyApproval(t *testing.T) {
	u := models.User{ApprovalCount: 2, Reputation: 20, ContributionCount: 5}

	updated := ApplyApproval(u)

	assert.Equal(t, 3, updated.ApprovalCount)
	assert.Equal(t, 30, updated.Reputation)
	assert.Equal(t, 5, updated.ContributionCount, "submission counter untouched by approval")

	// Input is unchanged
	assert.Equal(t, 2, u.ApprovalCount)
}
