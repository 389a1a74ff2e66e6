package coach

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestReviewBatch_OrderAndIndependentFailures(t *testing.T) {
	c := newTestCoach(t)

	reqs := make([]Request, 0, 6)
	for i := range 5 {
		req := debateRequest()
		req.Filename = fmt.Sprintf("case-%d.txt", i)
		reqs = append(reqs, req)
	}
	bad := debateRequest()
	bad.Filename = "empty.txt"
	bad.Data = nil
	reqs = append(reqs[:2], append([]Request{bad}, reqs[2:]...)...)

	items := c.ReviewBatch(context.Background(), reqs)
	if len(items) != len(reqs) {
		t.Fatalf("expected %d items, got %d", len(reqs), len(items))
	}
	for i, it := range items {
		if it.Filename != reqs[i].Filename {
			t.Errorf("item %d: expected %s, got %s", i, reqs[i].Filename, it.Filename)
		}
		if i == 2 {
			var cerr *Error
			if !errors.As(it.Err, &cerr) || cerr.Kind != KindExtractionEmpty {
				t.Errorf("expected extraction error for empty file, got %v", it.Err)
			}
			if it.Result != nil {
				t.Error("expected no result for failed item")
			}
			continue
		}
		if it.Err != nil || it.Result == nil {
			t.Errorf("item %d: expected success, got %v", i, it.Err)
		}
	}
}

func TestReviewBatch_CancelledContext(t *testing.T) {
	c := newTestCoach(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := c.ReviewBatch(ctx, []Request{debateRequest(), debateRequest()})
	for i, it := range items {
		if !errors.Is(it.Err, context.Canceled) {
			t.Errorf("item %d: expected context.Canceled, got %v", i, it.Err)
		}
	}
}

func TestReviewBatch_Empty(t *testing.T) {
	c := newTestCoach(t)
	if items := c.ReviewBatch(context.Background(), nil); len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}
