package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gadict/internal/domain"
	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
	"gadict/internal/domain/services"
)

type contributionEnv struct {
	words    *fakeWordRepo
	contribs *fakeContributionRepo
	users    *fakeUserRepo
	svc      services.ContributionService
}

func newContributionEnv() *contributionEnv {
	env := &contributionEnv{
		words:    newFakeWordRepo(),
		contribs: newFakeContributionRepo(),
		users:    newFakeUserRepo(),
	}
	env.svc = NewContributionService(env.words, env.contribs, env.users, &fakeTxManager{}, testLogger())
	return env
}

func (e *contributionEnv) newUser(role models.Role) services.Actor {
	u := models.User{
		ID:         uuid.New(),
		Email:      string(role) + "@example.org",
		Role:       role,
		LastActive: time.Now().UTC(),
	}
	e.users.put(u)
	return services.Actor{ID: u.ID, Role: role}
}

func (e *contributionEnv) seedWord(t *testing.T, headword, phoneme, meaning string) *models.Word {
	t.Helper()
	now := time.Now().UTC()
	w := &models.Word{
		ID:        uuid.New(),
		Word:      headword,
		Phoneme:   phoneme,
		Meaning:   meaning,
		Published: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	w.RecomputeCompletion()
	require.NoError(t, e.words.Create(context.Background(), w))
	return w
}

func strPtr(s string) *string { return &s }

func TestSubmitAddWordCreatesPlaceholder(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter: submitter,
		Type:      models.ContributionAddWord,
		ProposedData: models.WordFields{
			Word:    strPtr("kpakpo"),
			Meaning: strPtr("small"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ContributionPending, c.Status)
	assert.Nil(t, c.OriginalData)
	assert.Equal(t, submitter.ID, c.UserID)

	placeholder, err := env.words.GetByID(context.Background(), c.WordID)
	require.NoError(t, err)
	assert.Equal(t, "kpakpo", placeholder.Word)
	assert.False(t, placeholder.Published)
	assert.False(t, placeholder.Verified)
	assert.Equal(t, models.CompletionIncomplete, placeholder.CompletionStatus)

	user, err := env.users.GetByID(context.Background(), submitter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ContributionCount)
	assert.Equal(t, 0, user.ApprovalCount)
}

func TestSubmitAddWordDuplicateHeadword(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	env.seedWord(t, "Shia", "ʃia", "house")

	// Case difference must not slip past the duplicate check
	_, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddWord,
		ProposedData: models.WordFields{Word: strPtr("shia"), Meaning: strPtr("home")},
	})

	var dup *domain.DuplicateEntryError
	require.ErrorAs(t, err, &dup)
	assert.ErrorIs(t, err, domain.ErrConflict)

	user, err := env.users.GetByID(context.Background(), submitter.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.ContributionCount, "rejected submission must not count")
}

func TestSubmitValidation(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)

	tests := []struct {
		name string
		req  *services.SubmitContributionRequest
	}{
		{
			name: "missing type",
			req:  &services.SubmitContributionRequest{Submitter: submitter},
		},
		{
			name: "unknown type",
			req: &services.SubmitContributionRequest{
				Submitter:    submitter,
				Type:         models.ContributionType("RENAME_WORD"),
				ProposedData: models.WordFields{Word: strPtr("nu")},
			},
		},
		{
			name: "add word without headword",
			req: &services.SubmitContributionRequest{
				Submitter:    submitter,
				Type:         models.ContributionAddWord,
				ProposedData: models.WordFields{Meaning: strPtr("water")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Submit(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestSubmitUpdateSnapshotsOriginal(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	word := env.seedWord(t, "nu", "nu", "")

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddMeaning,
		WordID:       &word.ID,
		ProposedData: models.WordFields{Meaning: strPtr("water")},
	})
	require.NoError(t, err)

	require.NotNil(t, c.OriginalData)
	assert.Equal(t, "nu", *c.OriginalData.Word)
	assert.Equal(t, "", *c.OriginalData.Meaning)

	// The word itself is untouched until approval
	current, err := env.words.GetByID(context.Background(), word.ID)
	require.NoError(t, err)
	assert.Equal(t, "", current.Meaning)
}

func TestSubmitUpdateResolvesTargetByHeadword(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	word := env.seedWord(t, "loo", "loː", "fish")

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddUsage,
		ProposedData: models.WordFields{Word: strPtr("loo"), ExampleUsage: strPtr("Miye loo.")},
	})
	require.NoError(t, err)
	assert.Equal(t, word.ID, c.WordID)
}

func TestSubmitUpdateUnknownWord(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)

	_, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddMeaning,
		ProposedData: models.WordFields{Word: strPtr("absent"), Meaning: strPtr("x")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewRequiresModerator(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddWord,
		ProposedData: models.WordFields{Word: strPtr("gbi")},
	})
	require.NoError(t, err)

	for _, role := range []models.Role{models.RoleUser, models.RoleContributor} {
		_, err := env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
			Reviewer: env.newUser(role),
			Decision: services.DecisionApprove,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden, "role %s must not review", role)
	}
}

func TestReviewApproveMergesProposedFields(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	reviewer := env.newUser(models.RoleModerator)
	word := env.seedWord(t, "tɛ", "", "stone")
	require.Equal(t, models.CompletionIncomplete, word.CompletionStatus)

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddPhoneme,
		WordID:       &word.ID,
		ProposedData: models.WordFields{Phoneme: strPtr("tɛ")},
	})
	require.NoError(t, err)

	reviewed, err := env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionApprove,
		Notes:    "checked against the source recording",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ContributionApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, reviewer.ID, *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	require.NotNil(t, reviewed.ReviewNotes)
	assert.Equal(t, "checked against the source recording", *reviewed.ReviewNotes)

	merged, err := env.words.GetByID(context.Background(), word.ID)
	require.NoError(t, err)
	assert.Equal(t, "tɛ", merged.Phoneme)
	assert.Equal(t, "stone", merged.Meaning, "absent fields keep current values")
	assert.Equal(t, models.CompletionComplete, merged.CompletionStatus)

	user, err := env.users.GetByID(context.Background(), submitter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ApprovalCount)
	assert.Equal(t, domain.ReputationPerApproval, user.Reputation)
}

func TestReviewApproveAddWordPublishes(t *testing.T) {
	tests := []struct {
		name         string
		reviewerRole models.Role
		wantVerified bool
	}{
		{"moderator approval publishes unverified", models.RoleModerator, false},
		{"expert approval publishes verified", models.RoleExpert, true},
		{"admin approval publishes verified", models.RoleAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newContributionEnv()
			submitter := env.newUser(models.RoleContributor)
			reviewer := env.newUser(tt.reviewerRole)

			c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
				Submitter: submitter,
				Type:      models.ContributionAddWord,
				ProposedData: models.WordFields{
					Word:    strPtr("wolo"),
					Phoneme: strPtr("wolo"),
					Meaning: strPtr("book"),
				},
			})
			require.NoError(t, err)

			_, err = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
				Reviewer: reviewer,
				Decision: services.DecisionApprove,
			})
			require.NoError(t, err)

			word, err := env.words.GetByID(context.Background(), c.WordID)
			require.NoError(t, err)
			assert.True(t, word.Published)
			assert.Equal(t, tt.wantVerified, word.Verified)
			assert.Equal(t, models.CompletionComplete, word.CompletionStatus)
		})
	}
}

func TestReviewApprovePartialAddWordStaysIncomplete(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	reviewer := env.newUser(models.RoleModerator)

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddWord,
		ProposedData: models.WordFields{Word: strPtr("ablade"), Meaning: strPtr("freedom")},
	})
	require.NoError(t, err)

	_, err = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionApprove,
	})
	require.NoError(t, err)

	word, err := env.words.GetByID(context.Background(), c.WordID)
	require.NoError(t, err)
	assert.True(t, word.Published)
	assert.Equal(t, models.CompletionIncomplete, word.CompletionStatus, "no phoneme proposed")
}

func TestReviewRejectAddWordDeletesPlaceholder(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	reviewer := env.newUser(models.RoleModerator)

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddWord,
		ProposedData: models.WordFields{Word: strPtr("bogus")},
	})
	require.NoError(t, err)

	reviewed, err := env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionReject,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContributionRejected, reviewed.Status)

	_, err = env.words.GetByID(context.Background(), c.WordID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "placeholder must be gone")

	user, err := env.users.GetByID(context.Background(), submitter.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.ApprovalCount)
	assert.Equal(t, 0, user.Reputation)
}

func TestReviewRejectUpdateKeepsWord(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	reviewer := env.newUser(models.RoleModerator)
	word := env.seedWord(t, "la", "la", "fire")

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionUpdateWord,
		WordID:       &word.ID,
		ProposedData: models.WordFields{Meaning: strPtr("song")},
	})
	require.NoError(t, err)

	_, err = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionReject,
	})
	require.NoError(t, err)

	current, err := env.words.GetByID(context.Background(), word.ID)
	require.NoError(t, err)
	assert.Equal(t, "fire", current.Meaning)
}

func TestReviewApproveDeleteWord(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	reviewer := env.newUser(models.RoleModerator)
	word := env.seedWord(t, "dup", "dup", "duplicate entry")

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionDeleteWord,
		WordID:       &word.ID,
		ProposedData: models.WordFields{Reason: strPtr("duplicate of an existing entry")},
	})
	require.NoError(t, err)

	_, err = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionApprove,
	})
	require.NoError(t, err)

	_, err = env.words.GetByID(context.Background(), word.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user, err := env.users.GetByID(context.Background(), submitter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ApprovalCount)
}

func TestReviewTwiceFailsSecondTime(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	reviewer := env.newUser(models.RoleModerator)
	word := env.seedWord(t, "gbi", "gbi", "")

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddMeaning,
		WordID:       &word.ID,
		ProposedData: models.WordFields{Meaning: strPtr("day")},
	})
	require.NoError(t, err)

	_, err = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionApprove,
	})
	require.NoError(t, err)

	_, err = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionReject,
	})

	var already *domain.AlreadyReviewedError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, string(models.ContributionApproved), already.Status)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestConcurrentReviewsExactlyOneWins(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	word := env.seedWord(t, "hewalɛ", "", "strength")

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddPhoneme,
		WordID:       &word.ID,
		ProposedData: models.WordFields{Phoneme: strPtr("hewalɛ")},
	})
	require.NoError(t, err)

	const reviewers = 8
	errs := make([]error, reviewers)
	var wg sync.WaitGroup
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
				Reviewer: env.newUser(models.RoleModerator),
				Decision: services.DecisionApprove,
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var already *domain.AlreadyReviewedError
		assert.ErrorAs(t, err, &already)
	}
	assert.Equal(t, 1, wins, "exactly one reviewer must win")

	user, err := env.users.GetByID(context.Background(), submitter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ApprovalCount, "reputation applied exactly once")
	assert.Equal(t, domain.ReputationPerApproval, user.Reputation)
}

func TestMarkNeedsReviewAndReopen(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	reviewer := env.newUser(models.RoleModerator)
	word := env.seedWord(t, "nuu", "nuː", "")

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddMeaning,
		WordID:       &word.ID,
		ProposedData: models.WordFields{Meaning: strPtr("man")},
	})
	require.NoError(t, err)

	parked, err := env.svc.MarkNeedsReview(context.Background(), c.ID, reviewer, "which dialect is this from?")
	require.NoError(t, err)
	assert.Equal(t, models.ContributionNeedsReview, parked.Status)
	assert.Nil(t, parked.ReviewedBy, "reviewer reference only set on terminal transition")

	// Approve/reject does not apply while parked
	_, err = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionApprove,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	reopened, err := env.svc.Reopen(context.Background(), c.ID, reviewer)
	require.NoError(t, err)
	assert.Equal(t, models.ContributionPending, reopened.Status)

	_, err = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionApprove,
	})
	require.NoError(t, err)
}

func TestReopenTerminalContribution(t *testing.T) {
	env := newContributionEnv()
	submitter := env.newUser(models.RoleContributor)
	reviewer := env.newUser(models.RoleModerator)
	word := env.seedWord(t, "yoo", "joː", "")

	c, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    submitter,
		Type:         models.ContributionAddMeaning,
		WordID:       &word.ID,
		ProposedData: models.WordFields{Meaning: strPtr("woman")},
	})
	require.NoError(t, err)

	_, err = env.svc.Review(context.Background(), c.ID, &services.ReviewContributionRequest{
		Reviewer: reviewer,
		Decision: services.DecisionApprove,
	})
	require.NoError(t, err)

	_, err = env.svc.Reopen(context.Background(), c.ID, reviewer)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListScoping(t *testing.T) {
	env := newContributionEnv()
	alice := env.newUser(models.RoleContributor)
	bob := env.newUser(models.RoleContributor)
	moderator := env.newUser(models.RoleModerator)

	_, err := env.svc.Submit(context.Background(), &services.SubmitContributionRequest{
		Submitter:    alice,
		Type:         models.ContributionAddWord,
		ProposedData: models.WordFields{Word: strPtr("shika")},
	})
	require.NoError(t, err)

	// Own submissions are always visible
	own, total, err := env.svc.List(context.Background(), alice, repositories.ContributionQuery{UserID: &alice.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, own, 1)

	// Someone else's queue requires moderator
	_, _, err = env.svc.List(context.Background(), bob, repositories.ContributionQuery{UserID: &alice.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, _, err = env.svc.List(context.Background(), bob, repositories.ContributionQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, total, err = env.svc.List(context.Background(), moderator, repositories.ContributionQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
