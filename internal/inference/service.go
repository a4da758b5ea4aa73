// Package inference ranks candidate venomous species for free-text symptom
// descriptions and enriches the matches from the reference store.
package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tphakala/venomid/internal/errors"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/observability/metrics"
)

const componentName = "inference"

// Error type labels for metrics.
const (
	errTypeInput            = "input"
	errTypeStoreUnavailable = "store_unavailable"
)

// CandidateObserver receives per-request sizes. InferenceMetrics
// implements it.
type CandidateObserver interface {
	ObserveCandidates(n int)
	SetCorpusRecords(n int)
}

// Service runs inference requests. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	opener   StoreOpener
	recorder metrics.Recorder
	observer CandidateObserver
	log      logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder sets the metrics recorder. If r also implements
// CandidateObserver it receives candidate and corpus sizes.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r == nil {
			return
		}
		s.recorder = r
		if o, ok := r.(CandidateObserver); ok {
			s.observer = o
		}
	}
}

// WithLogger overrides the module logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService creates a Service that opens one store session per call.
func NewService(opener StoreOpener, opts ...Option) *Service {
	s := &Service{
		opener:   opener,
		recorder: metrics.NoOpRecorder{},
		log:      getLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if dead := DeadPhraseKeys(); len(dead) > 0 {
		s.log.Debug("synonym keys with spaces never match a single token",
			logger.Int("count", len(dead)),
			logger.String("keys", strings.Join(dead, ", ")))
	}
	return s
}

// Infer normalizes raw, ranks the corpus against it and enriches the
// matches. An empty raw fails with ErrInput before the store is touched;
// whitespace-only input normalizes to no tokens and yields no matches.
// Any store failure fails with ErrStoreUnavailable and no partial results.
func (s *Service) Infer(ctx context.Context, raw string) (results []ResultEntry, err error) {
	start := time.Now()
	log := s.log.WithContext(ctx)
	defer func() {
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusError
		}
		s.recorder.RecordOperation(metrics.OpInfer, status)
		s.recorder.RecordDuration(metrics.OpInfer, time.Since(start).Seconds())
	}()

	if raw == "" {
		s.recorder.RecordError(metrics.OpInfer, errTypeInput)
		return nil, errors.New(ErrInput).
			Component(componentName).
			Category(errors.CategoryValidation).
			Build()
	}

	store, err := s.opener.OpenStore(ctx)
	if err != nil {
		return nil, s.storeError(metrics.OpOpenSession, err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warn("failed to close reference store", logger.Error(cerr))
		}
	}()

	loadStart := time.Now()
	corpus, err := store.Symptoms(ctx)
	if err != nil {
		return nil, s.storeError(metrics.OpLoadCorpus, err)
	}
	s.recorder.RecordDuration(metrics.OpLoadCorpus, time.Since(loadStart).Seconds())

	normalized := Normalize(raw)

	rankStart := time.Now()
	candidates := Rank(normalized, corpus)
	s.recorder.RecordDuration(metrics.OpRank, time.Since(rankStart).Seconds())
	if s.observer != nil {
		s.observer.SetCorpusRecords(len(corpus))
		s.observer.ObserveCandidates(len(candidates))
	}

	enrichStart := time.Now()
	results, err = Enrich(ctx, store, candidates)
	if err != nil {
		return nil, s.storeError(metrics.OpEnrich, err)
	}
	s.recorder.RecordDuration(metrics.OpEnrich, time.Since(enrichStart).Seconds())

	log.Debug("inference completed",
		logger.String("normalized", normalized),
		logger.Int("corpus_records", len(corpus)),
		logger.Int("matches", len(results)),
		logger.Duration("elapsed", time.Since(start)))

	return results, nil
}

func (s *Service) storeError(operation string, cause error) error {
	s.recorder.RecordError(operation, errTypeStoreUnavailable)
	s.log.Error("reference store failure",
		logger.String("operation", operation),
		logger.Error(cause))
	return errors.New(fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, operation, cause)).
		Component(componentName).
		Category(errors.CategoryDatabase).
		Context("operation", operation).
		Build()
}
