package inference

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"
)

type pair struct{ species, reference int64 }

// memStore is an in-memory ReferenceStore.
type memStore struct {
	corpus      []SymptomRecord
	names       map[pair]*string
	pictures    map[int64]*string
	dois        map[int64]*string
	treatments  map[pair]Treatment
	symptomsErr error
	lookupErr   error

	lookups atomic.Int64
	closed  atomic.Bool
}

func (s *memStore) Symptoms(context.Context) ([]SymptomRecord, error) {
	if s.symptomsErr != nil {
		return nil, s.symptomsErr
	}
	return s.corpus, nil
}

func (s *memStore) CommonName(_ context.Context, sp, ref int64) (*string, error) {
	s.lookups.Add(1)
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	if name, ok := s.names[pair{sp, ref}]; ok {
		return name, nil
	}
	return nil, ErrLookupMiss
}

func (s *memStore) SpeciesPicture(_ context.Context, sp int64) (*string, error) {
	s.lookups.Add(1)
	if p, ok := s.pictures[sp]; ok {
		return p, nil
	}
	return nil, ErrLookupMiss
}

func (s *memStore) ReferenceDOI(_ context.Context, ref int64) (*string, error) {
	s.lookups.Add(1)
	if d, ok := s.dois[ref]; ok {
		return d, nil
	}
	return nil, ErrLookupMiss
}

func (s *memStore) Treatment(_ context.Context, sp, ref int64) (Treatment, error) {
	s.lookups.Add(1)
	if tp, ok := s.treatments[pair{sp, ref}]; ok {
		return tp, nil
	}
	return Treatment{}, ErrLookupMiss
}

func (s *memStore) Close() error {
	s.closed.Store(true)
	return nil
}

// mockOpener is a testify mock of StoreOpener.
type mockOpener struct {
	mock.Mock
}

func (m *mockOpener) OpenStore(ctx context.Context) (ReferenceStore, error) {
	args := m.Called(ctx)
	store, _ := args.Get(0).(ReferenceStore)
	return store, args.Error(1)
}

func ptr(s string) *string { return &s }
