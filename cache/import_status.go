package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ImportStatusTTL is how long the outcome of the last import is remembered
const ImportStatusTTL = 7 * 24 * time.Hour

// ImportStatus is the remembered outcome of the last import of a company
type ImportStatus struct {
	Outcome    string    `json:"outcome"`
	Message    string    `json:"message"`
	Quarter    string    `json:"quarter,omitempty"`
	ImportedAt time.Time `json:"imported_at"`
}

// ImportStatusStore keeps the last import outcome per company in Redis.
// A nil store, or one without Redis, remembers nothing.
type ImportStatusStore struct {
	redis *RedisClient
}

// NewImportStatusStore creates a store. redis may be nil.
func NewImportStatusStore(redis *RedisClient) *ImportStatusStore {
	return &ImportStatusStore{redis: redis}
}

func importStatusKey(companyID string) string {
	return "finboard:import:last:" + companyID
}

// Save stores the outcome of an import
func (s *ImportStatusStore) Save(ctx context.Context, companyID string, status ImportStatus) error {
	if s == nil || s.redis == nil {
		return nil
	}
	return s.redis.Set(ctx, importStatusKey(companyID), status, ImportStatusTTL)
}

// Last returns the outcome of the last import, or nil when none is known
func (s *ImportStatusStore) Last(ctx context.Context, companyID string) (*ImportStatus, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	var status ImportStatus
	err := s.redis.Get(ctx, importStatusKey(companyID), &status)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Forget drops the remembered outcome of a company
func (s *ImportStatusStore) Forget(ctx context.Context, companyID string) error {
	if s == nil || s.redis == nil {
		return nil
	}
	return s.redis.Delete(ctx, importStatusKey(companyID))
}
