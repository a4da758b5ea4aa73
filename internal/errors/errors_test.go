package errors

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	mu      sync.Mutex
	enabled bool
	errs    []*EnhancedError
}

func (r *recordingReporter) ReportError(ee *EnhancedError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, ee)
}

func (r *recordingReporter) IsEnabled() bool { return r.enabled }

func (r *recordingReporter) reported() []*EnhancedError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*EnhancedError(nil), r.errs...)
}

func TestFastPathNoTelemetry(t *testing.T) {
	SetTelemetryReporter(nil)

	ee := New(fmt.Errorf("test error")).Build()

	assert.Equal(t, "test error", ee.Error())
	assert.Equal(t, ComponentUnknown, ee.GetComponent())
	assert.Equal(t, CategoryGeneric, ee.Category)
}

func TestBuildReportsWhenReporterEnabled(t *testing.T) {
	reporter := &recordingReporter{enabled: true}
	SetTelemetryReporter(reporter)
	t.Cleanup(func() { SetTelemetryReporter(nil) })

	ee := Newf("lookup failed for %d", 7).
		Component("datastore").
		Category(CategoryDatabase).
		Context("table", "Species").
		Build()

	got := reporter.reported()
	require.Len(t, got, 1)
	assert.Same(t, ee, got[0])
	assert.Equal(t, "datastore", got[0].GetComponent())
	assert.Equal(t, "Species", got[0].GetContext()["table"])
}

func TestDisabledReporterSkipsReporting(t *testing.T) {
	reporter := &recordingReporter{enabled: false}
	SetTelemetryReporter(reporter)
	t.Cleanup(func() { SetTelemetryReporter(nil) })

	New(NewStd("boom")).Build()

	assert.Empty(t, reporter.reported())
	assert.False(t, hasActiveReporting.Load())
}

func TestEnhancedErrorUnwrapsToSentinel(t *testing.T) {
	t.Parallel()

	sentinel := NewStd("store unavailable")
	ee := New(fmt.Errorf("%w: open failed", sentinel)).
		Category(CategoryDatabase).
		Build()

	assert.ErrorIs(t, ee, sentinel)
	assert.True(t, IsCategory(ee, CategoryDatabase))
	assert.False(t, IsNotFound(ee))

	wrapped := fmt.Errorf("infer: %w", ee)
	assert.ErrorIs(t, wrapped, sentinel)
	assert.True(t, IsCategory(wrapped, CategoryDatabase))
}

func TestEnhancedErrorIsMatchesCategory(t *testing.T) {
	t.Parallel()

	a := New(NewStd("a")).Category(CategoryValidation).Build()
	b := New(NewStd("b")).Category(CategoryValidation).Build()
	c := New(NewStd("c")).Category(CategoryDatabase).Build()

	assert.True(t, Is(a, b))
	assert.False(t, Is(a, c))
}

func TestPriorityFallsBackToMedium(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PriorityHigh, New(NewStd("x")).Priority(PriorityHigh).Build().GetPriority())
	assert.Equal(t, PriorityMedium, New(NewStd("x")).Priority("urgent").Build().GetPriority())
	assert.Empty(t, New(NewStd("x")).Build().GetPriority())
}

func TestDetectCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		component string
		want      ErrorCategory
	}{
		{"context canceled", fmt.Errorf("query: context canceled"), "", CategoryCancellation},
		{"sql message", NewStd("sql: database is closed"), "", CategoryDatabase},
		{"datastore component", NewStd("no such table"), "datastore", CategoryDatabase},
		{"inference component", NewStd("ranking failed"), "inference", CategoryInference},
		{"already categorized", New(NewStd("x")).Category(CategoryNotFound).Build(), "", CategoryNotFound},
		{"generic", NewStd("something odd"), "", CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, detectCategory(tt.err, tt.component))
		})
	}
}

func TestLookupComponentUsesRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inference", lookupComponent("github.com/tphakala/venomid/internal/inference.(*Service).Infer"))
	assert.Equal(t, "datastore", lookupComponent("github.com/tphakala/venomid/internal/datastore/repository.(*speciesRepository).Picture"))
	assert.Equal(t, "main", lookupComponent("main.main"))
}

func TestBasicURLScrub(t *testing.T) {
	t.Parallel()

	scrubbed := basicURLScrub("Error at https://api.example.com?api_key=secret123&token=abc")
	assert.Equal(t, "Error at https://api.example.com?[REDACTED]", scrubbed)

	scrubbed = basicURLScrub("Config error: api_key=secret123 is invalid")
	assert.Contains(t, scrubbed, "[API_KEY_REDACTED]")
	assert.NotContains(t, scrubbed, "secret123")

	scrubbed = basicURLScrub("dial venom:hunter2@tcp(db:3306)/venomid failed")
	assert.NotContains(t, scrubbed, "hunter2")
	assert.Contains(t, scrubbed, "venom:[REDACTED]@")

	scrubbed = basicURLScrub("host=db user=venom password=hunter2 dbname=venomid")
	assert.NotContains(t, scrubbed, "hunter2")
}

func TestGenerateErrorTitle(t *testing.T) {
	t.Parallel()

	ee := New(NewStd("x")).
		Component("inference").
		Category(CategoryDatabase).
		Context("operation", "load_corpus").
		Build()

	assert.Equal(t, "Inference Database Error Load Corpus", generateErrorTitle(ee))
}
