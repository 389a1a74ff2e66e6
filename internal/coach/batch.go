package coach

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one request in a batch. Exactly one of Result
// and Err is set.
type BatchItem struct {
	Filename string
	Result   *Result
	Err      error
}

// ReviewBatch reviews reqs concurrently, at most batchConcurrency at a time.
// Items fail independently; results keep the order of reqs. Requests not yet
// started when ctx is cancelled report ctx.Err().
func (c *Coach) ReviewBatch(ctx context.Context, reqs []Request) []BatchItem {
	items := make([]BatchItem, len(reqs))

	var g errgroup.Group
	g.SetLimit(c.batchConcurrency)
	for i, req := range reqs {
		items[i].Filename = req.Filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return nil
			}
			res, err := c.Review(ctx, req)
			if err != nil {
				items[i].Err = err
				return nil
			}
			items[i].Result = res
			return nil
		})
	}
	_ = g.Wait()

	c.log.Info("batch review complete", "items", len(reqs), "failed", countFailed(items))
	return items
}

func countFailed(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}
