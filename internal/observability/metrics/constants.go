package metrics

import "time"

// Operation names shared by the inference and datastore recorders.
const (
	// OpInfer is a complete inference request.
	OpInfer = "infer"
	// OpLoadCorpus loads the symptom corpus.
	OpLoadCorpus = "load_corpus"
	// OpRank scores and ranks the corpus.
	OpRank = "rank"
	// OpEnrich enriches ranked candidates.
	OpEnrich = "enrich"
	// OpOpenSession opens a store session.
	OpOpenSession = "open_session"
	// OpDbQuery is a single store query.
	OpDbQuery = "db_query"
	// OpSeed loads seed data.
	OpSeed = "seed"
	// OpMigrate migrates the schema.
	OpMigrate = "migrate"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Histogram bucket configuration.
const (
	// BucketStart1ms starts 1ms duration histograms.
	BucketStart1ms = 0.001
	// BucketStart1 starts count histograms.
	BucketStart1 = 1.0

	BucketFactor2 = 2

	BucketCount12 = 12
	BucketCount15 = 15
)

// ShutdownTimeout bounds graceful shutdown of the metrics endpoint.
const ShutdownTimeout = 5 * time.Second
