package snapshot

import (
	"context"
	"fmt"
	"sort"

	"github.com/immocalc/realty-calculator/internal/config"
)

// Store keeps encoded snapshots. Implementations must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, s *Snapshot) error
	Load(ctx context.Context, id string) (*Snapshot, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore builds the store selected by the settings.
func NewStore(s config.StoreSettings) (Store, error) {
	switch s.Kind {
	case "memory":
		return NewMemoryStore(), nil
	case "file", "":
		return NewFileStore(s.Path)
	case "redis":
		return NewRedisStore(RedisOptions{
			Addr:      s.RedisAddr,
			DB:        s.RedisDB,
			Password:  s.Password,
			KeyPrefix: s.KeyPrefix,
			TTL:       s.TTL,
		}), nil
	}
	return nil, fmt.Errorf("unknown store kind %q", s.Kind)
}

// sortSummaries orders newest first, then by id for a stable listing.
func sortSummaries(list []Summary) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
