package journal

import (
	"context"

	"github.com/MikeMC777/ordenes-storefront/internal/metrics"
)

// Metrics counts events by kind and cancel attempts.
type Metrics struct {
	M *metrics.OrderMetrics
}

func (s Metrics) Record(_ context.Context, e Event) error {
	s.M.Events.WithLabelValues(string(e.Kind)).Inc()
	if e.Attempts > 0 && (e.Kind == KindCancelled || e.Kind == KindCancelFailed) {
		s.M.CancelAttempts.Add(float64(e.Attempts))
	}
	return nil
}
