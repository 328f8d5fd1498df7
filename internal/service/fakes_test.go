package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gadict/internal/domain"
	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
)

// The fakes below are mutex-guarded in-memory stores. fakeTxManager
// serializes transaction bodies the way row locks do in postgres, which
// is what the concurrent-review tests rely on. Rollback is not simulated;
// tests that exercise failure paths assert on returned errors only.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeWordRepo struct {
	mu    sync.Mutex
	words map[uuid.UUID]models.Word
}

func newFakeWordRepo() *fakeWordRepo {
	return &fakeWordRepo{words: make(map[uuid.UUID]models.Word)}
}

func (r *fakeWordRepo) Create(_ context.Context, word *models.Word) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.words {
		if strings.EqualFold(w.Word, word.Word) {
			return &domain.DuplicateEntryError{Headword: word.Word}
		}
	}
	r.words[word.ID] = *word
	return nil
}

func (r *fakeWordRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Word, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.words[id]
	if !ok {
		return nil, fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
	}
	return &w, nil
}

func (r *fakeWordRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeWordRepo) FindByHeadword(_ context.Context, headword string) (*models.Word, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.words {
		if strings.EqualFold(w.Word, headword) {
			found := w
			return &found, nil
		}
	}
	return nil, fmt.Errorf("word %q: %w", headword, domain.ErrNotFound)
}

func (r *fakeWordRepo) Update(_ context.Context, word *models.Word) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.words[word.ID]; !ok {
		return fmt.Errorf("word %s: %w", word.ID, domain.ErrNotFound)
	}
	r.words[word.ID] = *word
	return nil
}

func (r *fakeWordRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.words[id]; !ok {
		return fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
	}
	delete(r.words, id)
	return nil
}

func (r *fakeWordRepo) List(_ context.Context, q repositories.WordQuery) ([]models.Word, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Word{}
	for _, w := range r.words {
		if q.PublishedOnly && !w.Published {
			continue
		}
		out = append(out, w)
	}
	return out, len(out), nil
}

func (r *fakeWordRepo) Counts(_ context.Context) (repositories.WordCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var c repositories.WordCounts
	for _, w := range r.words {
		c.Total++
		if w.Verified {
			c.Verified++
		}
		if w.CompletionStatus == models.CompletionIncomplete {
			c.Incomplete++
		}
	}
	return c, nil
}

type fakeContributionRepo struct {
	mu            sync.Mutex
	contributions map[uuid.UUID]models.Contribution
}

func newFakeContributionRepo() *fakeContributionRepo {
	return &fakeContributionRepo{contributions: make(map[uuid.UUID]models.Contribution)}
}

func (r *fakeContributionRepo) Create(_ context.Context, c *models.Contribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contributions[c.ID] = *c
	return nil
}

func (r *fakeContributionRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Contribution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contributions[id]
	if !ok {
		return nil, fmt.Errorf("contribution %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (r *fakeContributionRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Contribution, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeContributionRepo) UpdateReview(_ context.Context, c *models.Contribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contributions[c.ID]; !ok {
		return fmt.Errorf("contribution %s: %w", c.ID, domain.ErrNotFound)
	}
	r.contributions[c.ID] = *c
	return nil
}

func (r *fakeContributionRepo) List(_ context.Context, q repositories.ContributionQuery) ([]models.Contribution, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Contribution{}
	for _, c := range r.contributions {
		if q.UserID != nil && c.UserID != *q.UserID {
			continue
		}
		if q.Status != nil && c.Status != *q.Status {
			continue
		}
		if q.Type != nil && c.Type != *q.Type {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (r *fakeContributionRepo) CountByStatus(_ context.Context, status models.ContributionStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.contributions {
		if c.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeFlagRepo struct {
	mu    sync.Mutex
	flags map[uuid.UUID]models.Flag
}

func newFakeFlagRepo() *fakeFlagRepo {
	return &fakeFlagRepo{flags: make(map[uuid.UUID]models.Flag)}
}

func (r *fakeFlagRepo) Create(_ context.Context, f *models.Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.flags {
		if existing.WordID == f.WordID && existing.UserID == f.UserID && existing.Status == models.FlagOpen {
			return &domain.DuplicateReportError{WordID: f.WordID}
		}
	}
	r.flags[f.ID] = *f
	return nil
}

func (r *fakeFlagRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Flag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flags[id]
	if !ok {
		return nil, fmt.Errorf("flag %s: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (r *fakeFlagRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Flag, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeFlagRepo) HasOpenFlag(_ context.Context, wordID, reporterID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.flags {
		if f.WordID == wordID && f.UserID == reporterID && f.Status == models.FlagOpen {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFlagRepo) UpdateResolution(_ context.Context, f *models.Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.flags[f.ID]; !ok {
		return fmt.Errorf("flag %s: %w", f.ID, domain.ErrNotFound)
	}
	r.flags[f.ID] = *f
	return nil
}

func (r *fakeFlagRepo) List(_ context.Context, q repositories.FlagQuery) ([]models.Flag, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Flag{}
	for _, f := range r.flags {
		if q.WordID != nil && f.WordID != *q.WordID {
			continue
		}
		if q.Status != nil && f.Status != *q.Status {
			continue
		}
		out = append(out, f)
	}
	return out, len(out), nil
}

func (r *fakeFlagRepo) CountByStatus(_ context.Context, status models.FlagStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, f := range r.flags {
		if f.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]models.User)}
}

func (r *fakeUserRepo) put(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (r *fakeUserRepo) IncrementContributionCount(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	u.ContributionCount++
	u.LastActive = time.Now().UTC()
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) ApplyApproval(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	u = domain.ApplyApproval(u)
	r.users[id] = u
	return &u, nil
}

func (r *fakeUserRepo) CountActiveContributors(_ context.Context, activeSince time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, u := range r.users {
		if u.ContributionCount > 0 && !u.LastActive.Before(activeSince) {
			count++
		}
	}
	return count, nil
}

type fakeStatsRepo struct {
	mu      sync.Mutex
	stats   *models.DictionaryStats
	upserts int
}

func (r *fakeStatsRepo) Get(_ context.Context) (*models.DictionaryStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stats == nil {
		return nil, nil
	}
	s := *r.stats
	return &s, nil
}

func (r *fakeStatsRepo) Upsert(_ context.Context, stats *models.DictionaryStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := *stats
	r.stats = &s
	r.upserts++
	return nil
}
