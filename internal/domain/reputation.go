package domain

import "gadict/internal/domain/models"

// ReputationPerApproval is the fixed reputation awarded to a submitter
// each time one of their contributions is approved.
const ReputationPerApproval = 10

// ApplyApproval returns the user with the approval bookkeeping applied:
// approvalCount incremented and reputation raised by the fixed award.
// Pure so the rule is testable without a database; the postgres user
// repository applies the same increments inside the review transaction.
func ApplyApproval(u models.User) models.User {
	u.ApprovalCount++
	u.Reputation += ReputationPerApproval
	return u
}
