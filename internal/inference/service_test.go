package inference

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/venomid/internal/errors"
	"github.com/tphakala/venomid/internal/logger"
	"github.com/tphakala/venomid/internal/observability/metrics"
)

func scenarioStore() *memStore {
	return &memStore{
		corpus: []SymptomRecord{{
			SpeciesID:   1,
			ReferenceID: 1,
			Symptom:     "numbness tingling in the bite area",
			OnsetTime:   ptr("immediate"),
			Duration:    ptr("2 hours"),
		}},
	}
}

func TestInferScenarioWithoutRelatedRows(t *testing.T) {
	t.Parallel()

	store := scenarioStore()
	opener := &mockOpener{}
	opener.On("OpenStore", mock.Anything).Return(store, nil).Once()
	recorder := metrics.NewTestRecorder()

	svc := NewService(opener, WithRecorder(recorder))
	got, err := svc.Infer(t.Context(), "numbness and tingling")
	require.NoError(t, err)
	require.Len(t, got, 1)

	e := got[0]
	assert.Equal(t, "Unknown", e.CommonName)
	assert.Nil(t, e.Image)
	assert.Nil(t, e.Reference)
	assert.Nil(t, e.DOIURL)
	assert.Nil(t, e.FirstAid)
	assert.Nil(t, e.HospitalTreatment)
	assert.Nil(t, e.Prognosis)
	assert.Greater(t, e.MatchScore, Threshold)
	assert.InDelta(t, 137.12, e.MatchScore, 1e-9)
	assert.Equal(t, ptr("immediate"), e.OnsetTime)
	assert.Equal(t, ptr("2 hours"), e.Duration)

	assert.True(t, store.closed.Load(), "session must be released")
	assert.Equal(t, 1, recorder.GetOperationCount(metrics.OpInfer, metrics.StatusSuccess))
	opener.AssertExpectations(t)
}

func TestInferEmptyInputNeverOpensStore(t *testing.T) {
	t.Parallel()

	opener := &mockOpener{}
	recorder := metrics.NewTestRecorder()
	svc := NewService(opener, WithRecorder(recorder))

	got, err := svc.Infer(t.Context(), "")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsInputError(err))
	assert.False(t, IsStoreUnavailable(err))
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))

	opener.AssertNotCalled(t, "OpenStore", mock.Anything)
	assert.Equal(t, 1, recorder.GetErrorCount(metrics.OpInfer, errTypeInput))
}

func TestInferWhitespaceInputYieldsNoMatches(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"   ", "  \t ", "\n\t"} {
		store := scenarioStore()
		opener := &mockOpener{}
		opener.On("OpenStore", mock.Anything).Return(store, nil).Once()
		recorder := metrics.NewTestRecorder()

		got, err := NewService(opener, WithRecorder(recorder)).Infer(t.Context(), raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.False(t, IsInputError(err))
		assert.True(t, store.closed.Load())
		assert.Zero(t, recorder.GetErrorCount(metrics.OpInfer, errTypeInput))
		opener.AssertExpectations(t)
	}
}

func TestNewServiceLogsDeadPhraseKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewService(&mockOpener{}, WithLogger(logger.NewSlogLogger(&buf, logger.LogLevelDebug, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "synonym keys with spaces never match a single token")
	assert.Contains(t, out, "joint pain")
	assert.Contains(t, out, fmt.Sprintf("count=%d", len(DeadPhraseKeys())))
}

func TestInferOpenFailureIsStoreUnavailable(t *testing.T) {
	t.Parallel()

	opener := &mockOpener{}
	opener.On("OpenStore", mock.Anything).Return(nil, errors.NewStd("unable to open database file"))

	_, err := NewService(opener).Infer(t.Context(), "edema")
	require.Error(t, err)
	assert.True(t, IsStoreUnavailable(err))
	assert.Contains(t, err.Error(), "unable to open database file")
}

func TestInferCorpusFailureReleasesSession(t *testing.T) {
	t.Parallel()

	store := &memStore{symptomsErr: errors.NewStd("no such table: Envenomation_Symptoms")}
	opener := &mockOpener{}
	opener.On("OpenStore", mock.Anything).Return(store, nil)

	got, err := NewService(opener).Infer(t.Context(), "edema")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsStoreUnavailable(err))
	assert.True(t, store.closed.Load())
}

func TestInferLookupFailureReturnsNoPartialResults(t *testing.T) {
	t.Parallel()

	store := scenarioStore()
	store.lookupErr = errors.NewStd("database is locked")
	opener := &mockOpener{}
	opener.On("OpenStore", mock.Anything).Return(store, nil)

	got, err := NewService(opener).Infer(t.Context(), "numbness")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsStoreUnavailable(err))
}

func TestInferNoMatchesIsEmptyNotError(t *testing.T) {
	t.Parallel()

	store := scenarioStore()
	opener := &mockOpener{}
	opener.On("OpenStore", mock.Anything).Return(store, nil)

	got, err := NewService(opener).Infer(t.Context(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, store.closed.Load())
}

func TestResultEntryJSONShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ResultEntry{CommonName: "Unknown", MatchScore: 42.5, Symptom: "edema"})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Len(t, fields, 11)
	assert.Nil(t, fields["doi_url"])
	assert.Contains(t, fields, "hospital_treatment")
	assert.Equal(t, "Unknown", fields["common_name"])
}
