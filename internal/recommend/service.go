// Package recommend implements the recommendation core: on-demand museum
// tagging, deterministic filter-and-rank, and batched description
// generation.
package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muzaproject/muza-bot/internal/llm"
	"github.com/muzaproject/muza-bot/internal/models"
	"github.com/muzaproject/muza-bot/internal/storage"
)

type ResultKind int

const (
	// ResultOK carries ranked museums with their descriptions.
	ResultOK ResultKind = iota
	// ResultNoInterests means the user has not selected any interests;
	// no candidate lookup was made.
	ResultNoInterests
	// ResultNoMuseums means the city lookup found nothing.
	ResultNoMuseums
	// ResultNoMatches means candidates exist but none share an interest
	// with the user.
	ResultNoMatches
	// ResultNoDescriptions means ranking succeeded but description
	// generation failed; the caller reports a generic failure.
	ResultNoDescriptions
)

type Result struct {
	Kind         ResultKind
	City         string
	Museums      []models.RankedMuseum
	Descriptions []string
}

type Options struct {
	MaxResults     int
	CandidateLimit int
	TagWorkers     int
}

// Service runs the full pipeline: candidates by city, fan-out tagging,
// ranking, description generation.
type Service struct {
	store     storage.Storage
	linker    *Linker
	describer *Describer
	logger    *zap.Logger
	opts      Options
}

func NewService(store storage.Storage, completer llm.Completer, logger *zap.Logger, opts Options) *Service {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = 50
	}
	if opts.TagWorkers <= 0 {
		opts.TagWorkers = 4
	}

	return &Service{
		store:     store,
		linker:    NewLinker(store, completer, logger),
		describer: NewDescriber(completer, logger),
		logger:    logger,
		opts:      opts,
	}
}

// Recommend produces ranked, described museums for the user's interests in
// the given city. Store read failures are the only errors returned; every
// external-service failure degrades to a neutral Result.
func (s *Service) Recommend(ctx context.Context, userID int64, city string) (Result, error) {
	logger := s.logger.With(
		zap.String("run_id", uuid.New().String()),
		zap.Int64("user_id", userID),
		zap.String("city", city))

	interests, err := s.store.GetUserInterests(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load user interests: %w", err)
	}
	if len(interests) == 0 {
		return Result{Kind: ResultNoInterests, City: city}, nil
	}

	candidates, err := s.store.FindMuseumsByCity(ctx, city, s.opts.CandidateLimit)
	if err != nil {
		return Result{}, fmt.Errorf("failed to find museums in %q: %w", city, err)
	}
	if len(candidates) == 0 {
		logger.Info("No museums found for city")
		return Result{Kind: ResultNoMuseums, City: city}, nil
	}

	tags := s.tagCandidates(ctx, candidates)

	ranked := Rank(candidates, tags, interests, s.opts.MaxResults)
	if len(ranked) == 0 {
		logger.Info("No museums matched user interests",
			zap.Int("candidates", len(candidates)))
		return Result{Kind: ResultNoMatches, City: city}, nil
	}

	descriptions := s.describer.Describe(ctx, ranked)
	if len(descriptions) == 0 {
		return Result{Kind: ResultNoDescriptions, City: city, Museums: ranked}, nil
	}

	logger.Info("Recommendation pipeline finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("ranked", len(ranked)))
	return Result{Kind: ResultOK, City: city, Museums: ranked, Descriptions: descriptions}, nil
}

// tagCandidates fans out EnsureTagged over the batch with bounded
// concurrency. Tagging failures are already absorbed per museum, so the
// group never returns an error and one slow or failing museum cannot block
// the rest.
func (s *Service) tagCandidates(ctx context.Context, candidates []models.Museum) map[int64][]string {
	tags := make(map[int64][]string, len(candidates))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.TagWorkers)
	for _, m := range candidates {
		m := m
		g.Go(func() error {
			labels := s.linker.EnsureTagged(gctx, m)
			mu.Lock()
			tags[m.ID] = labels
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return tags
}
