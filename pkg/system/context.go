package system

import (
	"context"
)

// RunWithContext executes a cleanup operation with context awareness.
// The operation runs on its own context so an already-cancelled parent
// cannot leave resources half released; the parent context only decides
// how long we wait for it.
//
// Returns:
//   - nil if cleanup completes successfully.
//   - original error if cleanup fails.
//   - the operation's eventual result if the parent context is cancelled,
//     after signalling the operation to stop.
func RunWithContext(ctx context.Context, operation func(context.Context) error) error {
	// Fast feedback if the operation was cancelled before we started.
	if err := ctx.Err(); err != nil {
		return err
	}

	cleanupCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Buffered so the goroutine can exit even if nobody reads the result.
	done := make(chan error, 1)

	go func() {
		done <- operation(cleanupCtx)
		close(done)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// Signal the operation to stop, then still wait for it so critical
		// release work is never abandoned mid-flight.
		cancel()
		return <-done
	}
}
