package ports

import "time"

type MetricsProvider interface {
	IncrementDatabaseQueries(queryType string, success bool)
	RecordDatabaseQueryDuration(queryType string, duration time.Duration)

	IncrementCacheHits()
	IncrementCacheMisses()
	RecordCacheOperationDuration(operation string, duration time.Duration)

	IncrementBlockOperations(operation string, success bool)
	IncrementImageOperations(operation string, success bool)
	IncrementValidationFailures(rule string)
	AddReclaimedImages(count int)
	IncrementAuthDecisions(decision string)

	SetServiceHealth(healthy bool)
}
