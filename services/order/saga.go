package order

import (
	"context"
	"log/slog"
)

// step is a single unit of work in an order placement. Each step that
// mutates durable state must be able to undo its effect.
type step interface {
	name() string
	execute(ctx context.Context) error
	compensate(ctx context.Context) error
}

// runSteps executes steps sequentially. When a step fails, the steps that
// already completed are compensated in reverse order and the failure is
// returned.
func runSteps(ctx context.Context, attemptID string, steps []step) error {
	var done []step
	for _, st := range steps {
		slog.Info("order: executing step", "attempt", attemptID, "step", st.name())
		if err := st.execute(ctx); err != nil {
			slog.Warn("order: step failed, rolling back",
				"attempt", attemptID, "step", st.name(), "err", err)
			for i := len(done) - 1; i >= 0; i-- {
				if cerr := done[i].compensate(ctx); cerr != nil {
					slog.Error("order: compensation failed",
						"attempt", attemptID, "step", done[i].name(), "err", cerr)
				}
			}
			return err
		}
		done = append(done, st)
	}
	return nil
}
