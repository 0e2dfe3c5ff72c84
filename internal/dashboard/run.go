package dashboard

import (
	"context"

	"github.com/npratt/powerdash/internal/fetch"
)

// RunAll runs tasks concurrently and applies each completion to c on the
// calling goroutine as it arrives. It returns once every task has completed
// or ctx is done. Tasks left running after cancellation finish on their own
// and their results are dropped.
func RunAll(ctx context.Context, c *Controller, tasks []fetch.Task) error {
	results := make(chan fetch.Completion, len(tasks))

	pending := 0
	for _, task := range tasks {
		if task == nil {
			continue
		}
		pending++
		go func() {
			results <- task()
		}()
	}

	for pending > 0 {
		select {
		case comp := <-results:
			c.Apply(comp)
			pending--
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
