package ports

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"credit-app/internal/core/domain"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(user *domain.User) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Role     domain.UserRole
}

// AuditService appends audit entries and lists them for review.
type AuditService interface {
	Record(ctx context.Context, entityName string, entityID uuid.UUID, action, details, performedBy string) error
	List(ctx context.Context, filter AuditLogFilter) ([]domain.AuditLog, error)
}

// RateLimiter counts hits per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// TableEncoder renders an export table into a downloadable file body.
type TableEncoder interface {
	Format() string
	ContentType() string
	Encode(table ExportTable) ([]byte, error)
}

// ExportTable is the flat projection written by a TableEncoder.
type ExportTable struct {
	Title  string
	Header []string
	Rows   [][]string
	// NumericColumns lists zero-based columns whose cells are decimal numbers.
	NumericColumns []int
	GeneratedAt    time.Time
}

// HealthChecker reports whether an external dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
	// Name is reported in the /health payload, e.g. "postgresql".
	Name() string
}
