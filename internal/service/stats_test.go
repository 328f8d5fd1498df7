package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gadict/internal/config"
	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
)

type statsEnv struct {
	words    *fakeWordRepo
	contribs *fakeContributionRepo
	flags    *fakeFlagRepo
	users    *fakeUserRepo
	stats    *fakeStatsRepo
	clock    *time.Time
	svc      *statsService
}

func newStatsEnv(freshness time.Duration) *statsEnv {
	env := &statsEnv{
		words:    newFakeWordRepo(),
		contribs: newFakeContributionRepo(),
		flags:    newFakeFlagRepo(),
		users:    newFakeUserRepo(),
		stats:    &fakeStatsRepo{},
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.clock = &now

	svc := NewStatsService(env.words, env.contribs, env.flags, env.users, env.stats, freshness, testLogger())
	env.svc = svc.(*statsService)
	env.svc.now = func() time.Time { return *env.clock }
	return env
}

func (e *statsEnv) advance(d time.Duration) {
	*e.clock = e.clock.Add(d)
}

func (e *statsEnv) addWord(t *testing.T, headword, phoneme, meaning string, verified bool) {
	t.Helper()
	w := &models.Word{
		ID:       uuid.New(),
		Word:     headword,
		Phoneme:  phoneme,
		Meaning:  meaning,
		Verified: verified,
	}
	w.RecomputeCompletion()
	require.NoError(t, e.words.Create(context.Background(), w))
}

func TestGetStatsComputesOnFirstRead(t *testing.T) {
	env := newStatsEnv(time.Hour)
	env.addWord(t, "shia", "ʃia", "house", true)
	env.addWord(t, "nu", "nu", "water", false)
	env.addWord(t, "nyɔŋmɔ", "", "God", false)

	env.contribs.contributions[uuid.New()] = models.Contribution{ID: uuid.New(), Status: models.ContributionPending}
	env.contribs.contributions[uuid.New()] = models.Contribution{ID: uuid.New(), Status: models.ContributionApproved}
	env.flags.flags[uuid.New()] = models.Flag{ID: uuid.New(), Status: models.FlagOpen}
	env.flags.flags[uuid.New()] = models.Flag{ID: uuid.New(), Status: models.FlagDismissed}

	env.users.put(models.User{ID: uuid.New(), ContributionCount: 3, LastActive: *env.clock})
	env.users.put(models.User{ID: uuid.New(), ContributionCount: 2, LastActive: env.clock.Add(-40 * 24 * time.Hour)})
	env.users.put(models.User{ID: uuid.New(), ContributionCount: 0, LastActive: *env.clock})

	stats, err := env.svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalWords)
	assert.Equal(t, 1, stats.VerifiedWords)
	assert.Equal(t, 1, stats.IncompleteWords)
	assert.Equal(t, 1, stats.PendingContributions)
	assert.Equal(t, 1, stats.OpenFlags)
	assert.Equal(t, 1, stats.ActiveContributors, "inactive and zero-contribution users excluded")
	assert.Equal(t, *env.clock, stats.UpdatedAt)
	assert.Equal(t, 1, env.stats.upserts)
}

func TestGetStatsServesCachedWithinFreshness(t *testing.T) {
	env := newStatsEnv(time.Hour)
	env.addWord(t, "shia", "ʃia", "house", false)

	first, err := env.svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalWords)

	// New data within the freshness window is not reflected
	env.addWord(t, "nu", "nu", "water", false)
	env.advance(30 * time.Minute)

	second, err := env.svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalWords)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
	assert.Equal(t, 1, env.stats.upserts)
}

func TestGetStatsRecomputesWhenStale(t *testing.T) {
	env := newStatsEnv(time.Hour)
	env.addWord(t, "shia", "ʃia", "house", false)

	_, err := env.svc.GetStats(context.Background())
	require.NoError(t, err)

	env.addWord(t, "nu", "nu", "water", false)
	env.advance(2 * time.Hour)

	stats, err := env.svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalWords)
	assert.Equal(t, *env.clock, stats.UpdatedAt)
	assert.Equal(t, 2, env.stats.upserts)
}

func TestGetStatsDefaultFreshness(t *testing.T) {
	env := newStatsEnv(0)
	assert.Equal(t, config.DefaultStatsFreshness, env.svc.freshness)
}

// countingWordRepo blocks Counts until released so concurrent stale reads
// pile up on one in-flight recompute.
type countingWordRepo struct {
	*fakeWordRepo
	gate  chan struct{}
	calls atomic.Int32
}

func (r *countingWordRepo) Counts(ctx context.Context) (repositories.WordCounts, error) {
	r.calls.Add(1)
	<-r.gate
	return r.fakeWordRepo.Counts(ctx)
}

func TestConcurrentStaleReadsCollapse(t *testing.T) {
	env := newStatsEnv(time.Hour)
	words := &countingWordRepo{fakeWordRepo: env.words, gate: make(chan struct{})}
	env.svc.wordRepo = words

	const readers = 8
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.GetStats(context.Background())
			assert.NoError(t, err)
		}()
	}

	// Give every reader time to join the in-flight recompute
	time.Sleep(100 * time.Millisecond)
	close(words.gate)
	wg.Wait()

	assert.LessOrEqual(t, int(words.calls.Load()), 2, "stale reads should collapse into one recompute")
	assert.GreaterOrEqual(t, int(words.calls.Load()), 1)
}
