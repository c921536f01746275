package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a process-wide key/value cache with per-key TTL. Values are
// stored JSON encoded so the memory and Redis backends behave the same.
type Store interface {
	// Get decodes the cached value into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeleteByPattern removes every key matching a glob such as "statistics:generation:3:*".
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
	Close() error
}

const CampusesKey = "campuses:all"

// StatisticsKey names the memoized aggregation of one category of a generation
func StatisticsKey(generationID uint, category string) string {
	return fmt.Sprintf("statistics:generation:%d:category:%s", generationID, category)
}

// StatisticsPattern matches every statistics key of a generation
func StatisticsPattern(generationID uint) string {
	return fmt.Sprintf("statistics:generation:%d:*", generationID)
}
