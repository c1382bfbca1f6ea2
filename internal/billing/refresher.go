package billing

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/LokeshN1/bill-master/internal/domain/repository"
)

// refresher periodically re-reads the floor state for one session so server
// records and local cache converge without operator action.
type refresher struct {
	session  *Session
	interval time.Duration
	log      zerolog.Logger
	stop     chan struct{}
	done     chan struct{}
}

func startRefresher(s *Session, interval time.Duration, log zerolog.Logger) *refresher {
	r := &refresher{
		session:  s,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *refresher) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.interval)
			_, err := r.session.RefreshTables(ctx)
			cancel()
			if err != nil && err != ErrSwitchInProgress {
				r.log.Warn().Err(err).Msg("floor refresh failed")
			}
		}
	}
}

func (r *refresher) Stop() {
	close(r.stop)
	<-r.done
}

// StartCacheSweeper deletes expired durable cache entries on an interval.
// Expiry is also enforced lazily on read, so this only bounds table growth.
// The returned function stops the sweeper and waits for it to exit.
func StartCacheSweeper(store repository.BillCacheRepository, interval time.Duration, log zerolog.Logger) func() {
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				n, err := store.Sweep(ctx)
				cancel()
				if err != nil {
					log.Warn().Err(err).Msg("cache sweep failed")
				} else if n > 0 {
					log.Debug().Int64("removed", n).Msg("swept expired cart snapshots")
				}
			}
		}
	}()
	return func() {
		close(stop)
		<-done
	}
}
