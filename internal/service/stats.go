package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"gadict/internal/config"
	"gadict/internal/domain/models"
	"gadict/internal/domain/repositories"
	"gadict/internal/domain/services"
)

// statsService implements the StatsService interface.
//
// The snapshot is recomputed lazily: a read inside the freshness window
// returns the cached row, a stale read recomputes and upserts. Concurrent
// stale reads are collapsed into one recomputation via singleflight.
type statsService struct {
	wordRepo         repositories.WordRepository
	contributionRepo repositories.ContributionRepository
	flagRepo         repositories.FlagRepository
	userRepo         repositories.UserRepository
	statsRepo        repositories.StatsRepository
	freshness        time.Duration
	now              func() time.Time
	group            singleflight.Group
	logger           *slog.Logger
}

// NewStatsService creates a new stats service. freshness <= 0 falls back
// to the default window.
func NewStatsService(
	wordRepo repositories.WordRepository,
	contributionRepo repositories.ContributionRepository,
	flagRepo repositories.FlagRepository,
	userRepo repositories.UserRepository,
	statsRepo repositories.StatsRepository,
	freshness time.Duration,
	logger *slog.Logger,
) services.StatsService {
	if freshness <= 0 {
		freshness = config.DefaultStatsFreshness
	}
	return &statsService{
		wordRepo:         wordRepo,
		contributionRepo: contributionRepo,
		flagRepo:         flagRepo,
		userRepo:         userRepo,
		statsRepo:        statsRepo,
		freshness:        freshness,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           logger,
	}
}

// GetStats returns the dictionary-wide aggregate, recomputing it when the
// cached snapshot is older than the freshness window
func (s *statsService) GetStats(ctx context.Context) (*models.DictionaryStats, error) {
	cached, err := s.statsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cached != nil && s.now().Sub(cached.UpdatedAt) < s.freshness {
		return cached, nil
	}

	v, err, _ := s.group.Do("dictionary-stats", func() (interface{}, error) {
		return s.recompute(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.DictionaryStats), nil
}

func (s *statsService) recompute(ctx context.Context) (*models.DictionaryStats, error) {
	now := s.now()
	stats := &models.DictionaryStats{UpdatedAt: now}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.wordRepo.Counts(gCtx)
		if err != nil {
			return err
		}
		stats.TotalWords = counts.Total
		stats.VerifiedWords = counts.Verified
		stats.IncompleteWords = counts.Incomplete
		return nil
	})
	g.Go(func() error {
		count, err := s.contributionRepo.CountByStatus(gCtx, models.ContributionPending)
		if err != nil {
			return err
		}
		stats.PendingContributions = count
		return nil
	})
	g.Go(func() error {
		count, err := s.flagRepo.CountByStatus(gCtx, models.FlagOpen)
		if err != nil {
			return err
		}
		stats.OpenFlags = count
		return nil
	})
	g.Go(func() error {
		count, err := s.userRepo.CountActiveContributors(gCtx, now.Add(-config.ActiveContributorWindow))
		if err != nil {
			return err
		}
		stats.ActiveContributors = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		return nil, err
	}

	s.logger.Debug("dictionary stats recomputed",
		"total_words", stats.TotalWords,
		"pending_contributions", stats.PendingContributions,
		"open_flags", stats.OpenFlags,
	)

	return stats, nil
}
