package external

import (
	"fmt"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

type CacheProviderFactory struct{}

func NewCacheProviderFactory() *CacheProviderFactory {
	return &CacheProviderFactory{}
}

// CreateCacheProvider returns the configured backend. Both backends also
// implement ports.CacheMetrics.
func (f *CacheProviderFactory) CreateCacheProvider(cfg ports.CacheConfig) (ports.CacheProvider, error) {
	switch cfg.Type {
	case CacheTypeMemory, "":
		return NewMemoryCacheProvider(), nil
	case CacheTypeRedis:
		provider, err := NewRedisCacheProvider(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported cache type: %s", cfg.Type), nil)
	}
}
