package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/npratt/powerdash/internal/fetch"
	"github.com/npratt/powerdash/internal/forecast"
)

// ErrInvalidRowLimit is returned for row limits outside RowLimits.
var ErrInvalidRowLimit = errors.New("invalid row limit")

// RowLimits are the only row counts the table preview may request.
var RowLimits = []int{5, 10, 15, 20, 50, 100, 200}

// DefaultRowLimit is the initial table preview size.
const DefaultRowLimit = 5

// ValidRowLimit reports whether n is one of RowLimits.
func ValidRowLimit(n int) bool {
	return slices.Contains(RowLimits, n)
}

// TableState is the table preview as displayed.
//
// Rows holds the last successful response. It stays populated while a
// newer request is loading or after it fails; it is empty only before the
// first success.
type TableState struct {
	RowLimit    int
	Rows        []forecast.Row
	RowsInTotal int
	Loading     bool
	Err         string
}

// Table drives the row-limited dataset preview.
type Table struct {
	source   forecast.InfoReader
	fetcher  *fetch.Fetcher[*forecast.Preview]
	rowLimit int
	wrap     func(fetch.LoadFunc[*forecast.Preview]) fetch.LoadFunc[*forecast.Preview]
}

func newTable(source forecast.InfoReader, rowLimit int, logger *slog.Logger) *Table {
	if !ValidRowLimit(rowLimit) {
		rowLimit = DefaultRowLimit
	}
	return &Table{
		source:   source,
		fetcher:  fetch.New[*forecast.Preview](ResourcePreview, logger),
		rowLimit: rowLimit,
	}
}

// RowLimit returns the most recently requested row limit.
func (t *Table) RowLimit() int {
	return t.rowLimit
}

// Issue fetches the preview at the current row limit.
func (t *Table) Issue(ctx context.Context) fetch.Task {
	limit := t.rowLimit
	load := func(ctx context.Context) (*forecast.Preview, error) {
		p, err := t.source.Preview(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("fetch preview of %d rows: %w", limit, err)
		}
		return p, nil
	}
	if t.wrap != nil {
		load = t.wrap(load)
	}
	return t.fetcher.Issue(ctx, load)
}

// SetRowLimit requests a preview of n rows. Values outside RowLimits return
// ErrInvalidRowLimit and leave the table untouched with no request issued.
func (t *Table) SetRowLimit(ctx context.Context, n int) (fetch.Task, error) {
	if !ValidRowLimit(n) {
		return nil, fmt.Errorf("%w: %d (allowed %v)", ErrInvalidRowLimit, n, RowLimits)
	}
	t.rowLimit = n
	return t.Issue(ctx), nil
}

// NextRowLimit steps to the next larger row limit. It returns nil at the top.
func (t *Table) NextRowLimit(ctx context.Context) fetch.Task {
	return t.step(ctx, 1)
}

// PrevRowLimit steps to the next smaller row limit. It returns nil at the bottom.
func (t *Table) PrevRowLimit(ctx context.Context) fetch.Task {
	return t.step(ctx, -1)
}

func (t *Table) step(ctx context.Context, delta int) fetch.Task {
	i := slices.Index(RowLimits, t.rowLimit) + delta
	if i < 0 || i >= len(RowLimits) {
		return nil
	}
	task, _ := t.SetRowLimit(ctx, RowLimits[i])
	return task
}

// Apply applies a preview result. Stale results are dropped.
func (t *Table) Apply(r fetch.Result[*forecast.Preview]) bool {
	return t.fetcher.Apply(r)
}

// State returns the table as displayed.
func (t *Table) State() TableState {
	st := t.fetcher.State()
	ts := TableState{
		RowLimit: t.rowLimit,
		Loading:  st.Pending(),
		Err:      st.Err,
	}
	if last, ok := t.fetcher.Last(); ok && last != nil {
		ts.Rows = last.Rows
		ts.RowsInTotal = last.RowsInTotal
	}
	return ts
}

// FetchState returns the underlying fetch state.
func (t *Table) FetchState() fetch.State[*forecast.Preview] {
	return t.fetcher.State()
}
