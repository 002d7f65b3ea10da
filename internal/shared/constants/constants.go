package constants

// Environment names used to select migration strategy and gin mode.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Gin context keys set by middleware and read by handlers.
const (
	ContextKeyActor          = "actor"
	ContextKeyIdempotencyKey = "idempotency_key"
)

// IdempotencyKeyHeader is the client-supplied header enabling request
// deduplication on unsafe methods.
const IdempotencyKeyHeader = "Idempotency-Key"

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SystemActor attributes workflow events written by background workers
// rather than by an authenticated user.
const SystemActor = "system"
