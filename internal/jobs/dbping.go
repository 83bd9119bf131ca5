package jobs

import (
	"context"
	"database/sql"
	"time"

	"github.com/tatamelab/tatame/internal/metrics"
)

// DBPing alimenta o histograma de latência do banco continuamente, não só
// quando alguém bate no /healthz.
func DBPing(database *sql.DB) Job {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		t0 := time.Now()
		if err := database.PingContext(ctx); err != nil {
			return err
		}
		metrics.ObserveDBPing(time.Since(t0))
		return nil
	}
}
