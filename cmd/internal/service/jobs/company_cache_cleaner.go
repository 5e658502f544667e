package jobs

import (
	"context"
	"time"

	"entitysearch/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

const (
	DefaultCacheTTL      = 10 * time.Hour
	DefaultCleanInterval = 1 * time.Hour
)

type CompanyRepository interface {
	DeleteExpired(before int64) error
}

// CompanyCacheCleaner periodically evicts company lookups, positive and
// negative, older than the TTL.
type CompanyCacheCleaner struct {
	companyRepo CompanyRepository
	ttl         time.Duration
	interval    time.Duration
	now         func() int64
}

func NewCompanyCacheCleaner(repo CompanyRepository, ttl, interval time.Duration) *CompanyCacheCleaner {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if interval <= 0 {
		interval = DefaultCleanInterval
	}
	return &CompanyCacheCleaner{
		companyRepo: repo,
		ttl:         ttl,
		interval:    interval,
		now:         utils.NowUTC,
	}
}

// Start blocks until ctx is done.
func (c *CompanyCacheCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Infof("Company cache cleaner started (ttl=%s, interval=%s)", c.ttl, c.interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping company cache cleaner...")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *CompanyCacheCleaner) cleanup() {
	cutoff := c.now() - c.ttl.Milliseconds()

	if err := c.companyRepo.DeleteExpired(cutoff); err != nil {
		log.Errorf("Cleaner: failed to delete expired company cache: %v", err)
		return
	}

	log.Debugf("Cleaner: swept company caches older than %s", utils.FormatEpoch(cutoff))
}
