package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/npratt/powerdash/internal/fetch"
	"github.com/npratt/powerdash/internal/forecast"
)

func TestTable_StaleResponseImmunity(t *testing.T) {
	src := fullSource()
	c := New(src)
	loadAll(t, c)

	ctx := context.Background()
	var tasks []fetch.Task
	for _, n := range []int{10, 200, 15, 50} {
		task, err := c.SetRowLimit(ctx, n)
		if err != nil {
			t.Fatalf("SetRowLimit(%d): %v", n, err)
		}
		tasks = append(tasks, task)
	}

	// Resolve in every order; only the last issued limit may win.
	orders := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}}
	for _, order := range orders {
		for _, i := range order {
			c.Apply(tasks[i]())
		}
		ts := c.Table()
		if ts.RowLimit != 50 {
			t.Errorf("order %v: RowLimit = %d, want 50", order, ts.RowLimit)
		}
		if len(ts.Rows) != 50 {
			t.Errorf("order %v: %d rows displayed, want 50", order, len(ts.Rows))
		}
	}
}

func TestTable_RowLimitEnumeration(t *testing.T) {
	src := fullSource()
	c := New(src)
	loadAll(t, c)
	before := c.Table()
	calls := src.PreviewCallCount()

	for _, n := range []int{0, -5, 1, 7, 25, 201, 1000} {
		task, err := c.SetRowLimit(context.Background(), n)
		if !errors.Is(err, ErrInvalidRowLimit) {
			t.Errorf("SetRowLimit(%d) err = %v, want ErrInvalidRowLimit", n, err)
		}
		if task != nil {
			t.Errorf("SetRowLimit(%d) returned a task", n)
		}
	}

	if src.PreviewCallCount() != calls {
		t.Errorf("invalid limits reached the network: %d calls, want %d", src.PreviewCallCount(), calls)
	}
	after := c.Table()
	if after.RowLimit != before.RowLimit || len(after.Rows) != len(before.Rows) || after.Loading {
		t.Errorf("state changed: before %+v after %+v", before, after)
	}
}

func TestTable_ValidLimitsSendQueryValue(t *testing.T) {
	src := fullSource()
	c := New(src)

	for _, n := range RowLimits {
		task, err := c.SetRowLimit(context.Background(), n)
		if err != nil {
			t.Fatalf("SetRowLimit(%d): %v", n, err)
		}
		c.Apply(task())
	}
	if len(src.PreviewCalls) != len(RowLimits) {
		t.Fatalf("PreviewCalls = %v", src.PreviewCalls)
	}
	for i, n := range RowLimits {
		if src.PreviewCalls[i] != n {
			t.Errorf("call %d used row limit %d, want %d", i, src.PreviewCalls[i], n)
		}
	}
}

func TestTable_StaleRowsVisibleWhileLoading(t *testing.T) {
	c := New(fullSource())

	first := c.Table()
	if len(first.Rows) != 0 {
		t.Error("first load should show no rows")
	}

	loadAll(t, c)
	if _, err := c.SetRowLimit(context.Background(), 20); err != nil {
		t.Fatalf("SetRowLimit: %v", err)
	}

	ts := c.Table()
	if !ts.Loading {
		t.Error("expected loading")
	}
	if len(ts.Rows) != DefaultRowLimit {
		t.Errorf("previous %d rows should stay visible, got %d", DefaultRowLimit, len(ts.Rows))
	}
}

func TestTable_FailureKeepsRows(t *testing.T) {
	src := fullSource()
	c := New(src)
	loadAll(t, c)

	src.PreviewError = &forecast.NetworkError{Endpoint: forecast.EndpointFetchDataset, Err: errors.New("connection refused")}
	task, _ := c.SetRowLimit(context.Background(), 10)
	c.Apply(task())

	ts := c.Table()
	if ts.Err == "" {
		t.Error("expected error")
	}
	if len(ts.Rows) != DefaultRowLimit {
		t.Errorf("rows = %d, want previous %d", len(ts.Rows), DefaultRowLimit)
	}
}

func TestTable_StepRowLimit(t *testing.T) {
	c := New(fullSource())
	ctx := context.Background()

	if task := c.PrevRowLimit(ctx); task != nil {
		t.Error("PrevRowLimit at the smallest size should return nil")
	}

	if task := c.NextRowLimit(ctx); task == nil {
		t.Fatal("expected task")
	}
	if c.Table().RowLimit != 10 {
		t.Errorf("RowLimit = %d, want 10", c.Table().RowLimit)
	}

	for c.NextRowLimit(ctx) != nil {
	}
	if c.Table().RowLimit != 200 {
		t.Errorf("RowLimit = %d, want 200", c.Table().RowLimit)
	}

	c.PrevRowLimit(ctx)
	if c.Table().RowLimit != 100 {
		t.Errorf("RowLimit = %d, want 100", c.Table().RowLimit)
	}
}

func TestValidRowLimit(t *testing.T) {
	for _, n := range RowLimits {
		if !ValidRowLimit(n) {
			t.Errorf("%d should be valid", n)
		}
	}
	if ValidRowLimit(30) {
		t.Error("30 should be invalid")
	}
}
