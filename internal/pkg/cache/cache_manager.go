package cache

import (
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
)

// CatalogTTL is how long public catalog data is served from memory.
const CatalogTTL = 5 * time.Minute

// CacheManager holds the caches for slow-changing backend data.
type CacheManager struct {
	Sports   *UnifiedCache[[]models.Sport]
	Colleges *UnifiedCache[[]models.College]
	// Schedule is short lived because scores move during the meet.
	Schedule *UnifiedCache[[]models.Match]
}

func NewCacheManager(logger *zap.Logger) *CacheManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheManager{
		Sports:   NewUnifiedCache[[]models.Sport](CatalogTTL, "sports", logger),
		Colleges: NewUnifiedCache[[]models.College](CatalogTTL, "colleges", logger),
		Schedule: NewUnifiedCache[[]models.Match](30*time.Second, "schedule", logger),
	}
}

func (cm *CacheManager) GetAllMetrics() map[string]CacheMetrics {
	return map[string]CacheMetrics{
		"sports":   cm.Sports.GetMetrics(),
		"colleges": cm.Colleges.GetMetrics(),
		"schedule": cm.Schedule.GetMetrics(),
	}
}

func (cm *CacheManager) ClearAll() {
	cm.Sports.Clear()
	cm.Colleges.Clear()
	cm.Schedule.Clear()
}
