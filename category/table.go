package category

import (
	"context"
	"fmt"

	"github.com/jonwraymond/compendium/filter"
)

// MaxTableSize caps how many results can be exported as table rows.
const MaxTableSize = 1000

// TableRow is one weighted row of a random table.
type TableRow struct {
	UUID   string `json:"documentUuid"`
	Weight int    `json:"weight"`
	Range  [2]int `json:"range"`
}

// TableOptions controls row numbering.
type TableOptions struct {
	// Initial offsets the row ranges, for appending to an existing table.
	Initial int `json:"initial"`
	// Weight of every row. Non-positive means 1.
	Weight int `json:"weight"`
}

// TableResults turns the live results into table rows numbered from
// Initial+1.
func (l *Loader) TableResults(ctx context.Context, opts TableOptions) ([]TableRow, error) {
	return l.TableResultsFor(ctx, l.Filter(), opts)
}

// TableResultsFor is TableResults over the results of f.
func (l *Loader) TableResultsFor(ctx context.Context, f filter.Filter, opts TableOptions) ([]TableRow, error) {
	if !l.IsInitialized() {
		return nil, fmt.Errorf("%w: %s", ErrNotInitialized, l.Category())
	}
	results, err := l.ResultsFor(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(results) > MaxTableSize {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyResults, len(results), MaxTableSize)
	}
	weight := opts.Weight
	if weight <= 0 {
		weight = 1
	}
	rows := make([]TableRow, len(results))
	for i, e := range results {
		n := opts.Initial + i + 1
		rows[i] = TableRow{UUID: e.UUID, Weight: weight, Range: [2]int{n, n}}
	}
	return rows, nil
}
