package category

import (
	"cmp"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/compendium/entry"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/internal/logger"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/predicate"
	"github.com/jonwraymond/compendium/search"
	"github.com/jonwraymond/compendium/vocab"
)

// State is the load lifecycle of a category.
type State int

// Loader states. A forced reload re-enters Loading.
const (
	Uninitialized State = iota
	Loading
	Initialized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Initialized:
		return "initialized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PackLister names the packs enabled for a category, in load order.
type PackLister interface {
	LoadedPacks(c vocab.Category) []string
}

// OpenOptions controls how a category is shown.
type OpenOptions struct {
	// Filter replaces the live filter. The category must be initialized.
	Filter filter.Filter
	// HideNavigation shows no other category.
	HideNavigation bool
	// ShowCategories restricts navigation to these categories.
	ShowCategories []vocab.Category
}

// Opener makes a category the active one.
type Opener interface {
	OpenCategory(ctx context.Context, c vocab.Category, opts OpenOptions) error
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	Source pack.Source
	Packs  PackLister
	// Opener receives Open calls. Optional.
	Opener Opener
}

// Loader owns one category: its entries, search index and filters.
type Loader struct {
	builder Builder
	source  pack.Source
	packs   PackLister
	opener  Opener
	group   singleflight.Group
	memo    predicate.Memo

	mu       sync.RWMutex
	state    State
	entries  []entry.Entry
	index    *search.Index
	defaults filter.Filter
	live     filter.Filter
}

// NewLoader creates an uninitialized loader.
func NewLoader(b Builder, opts LoaderOptions) *Loader {
	return &Loader{
		builder: b,
		source:  opts.Source,
		packs:   opts.Packs,
		opener:  opts.Opener,
	}
}

// SetOpener replaces the opener.
func (l *Loader) SetOpener(o Opener) {
	l.mu.Lock()
	l.opener = o
	l.mu.Unlock()
}

// Category returns the category the loader serves.
func (l *Loader) Category() vocab.Category { return l.builder.Category() }

// Builder returns the category's builder.
func (l *Loader) Builder() Builder { return l.builder }

// GMOnly reports whether players may not open the category.
func (l *Loader) GMOnly() bool { return l.builder.GMOnly() }

// RangeParser returns the category's range input parser.
func (l *Loader) RangeParser() filter.RangeParser { return l.builder.RangeParser() }

// State returns the current lifecycle state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// IsInitialized reports whether a load has completed.
func (l *Loader) IsInitialized() bool {
	return l.State() == Initialized
}

// Init loads the category unless it is already initialized. force reloads
// regardless. Concurrent calls share one load. On failure the previous
// entries and filters are kept.
func (l *Loader) Init(ctx context.Context, force bool) error {
	if !force && l.IsInitialized() {
		return nil
	}
	_, err, _ := l.group.Do("init", func() (any, error) {
		return nil, l.load(ctx)
	})
	return err
}

func (l *Loader) load(ctx context.Context) error {
	log := logger.FromContext(ctx).With(zap.String("category", string(l.Category())))

	l.mu.Lock()
	prev := l.state
	l.state = Loading
	l.mu.Unlock()

	entries, f, idx, err := l.build(ctx, log)
	if err != nil {
		l.mu.Lock()
		l.state = prev
		l.mu.Unlock()
		log.Error("load failed", zap.Error(err))
		return fmt.Errorf("load %s: %w", l.Category(), err)
	}

	l.mu.Lock()
	old := l.index
	l.entries = entries
	l.index = idx
	l.defaults = f
	l.live = f.Clone()
	l.state = Initialized
	l.mu.Unlock()
	l.memo.Reset()

	if old != nil && old != idx {
		_ = old.Close()
	}
	log.Debug("finished loading", zap.Int("entries", len(entries)))
	return nil
}

func (l *Loader) build(ctx context.Context, log *zap.Logger) ([]entry.Entry, filter.Filter, *search.Index, error) {
	var ids []string
	if l.packs != nil {
		ids = l.packs.LoadedPacks(l.Category())
	}

	batch := l.builder.Begin()
	entries := []entry.Entry{}
	seen := make(map[string]bool)

	if l.source != nil {
		for idx, err := range l.source.Load(ctx, l.builder.DocumentType(), ids, l.builder.Fields()) {
			if err != nil {
				return nil, nil, nil, err
			}
			log.Debug("loading pack",
				zap.String("pack", idx.Pack.Label),
				zap.Int("records", len(idx.Records)),
			)
			for _, bad := range idx.Invalid {
				log.Warn("record has unreadable fields, consider disabling the pack",
					zap.String("record", cmp.Or(bad.Name, bad.ID)),
					zap.String("pack", idx.Pack.Label),
					zap.Error(bad.Err),
				)
			}
			for _, r := range idx.Records {
				e, ok, err := batch.Add(idx.Pack, r)
				if err != nil {
					log.Warn("record does not have all required data fields, consider disabling the pack",
						zap.String("record", r.Name),
						zap.String("pack", idx.Pack.Label),
						zap.Error(err),
					)
					continue
				}
				if !ok {
					continue
				}
				if seen[e.UUID] {
					log.Warn("duplicate record uuid",
						zap.String("record", r.Name),
						zap.String("uuid", e.UUID),
						zap.String("pack", idx.Pack.Label),
					)
					continue
				}
				seen[e.UUID] = true
				entries = append(entries, e)
			}
		}
	}

	f := l.builder.NewFilter()
	batch.Finish(f)

	l.mu.RLock()
	idx := l.index
	l.mu.RUnlock()
	if idx == nil {
		var err error
		if idx, err = search.New(l.builder.SearchConfig()); err != nil {
			return nil, nil, nil, err
		}
	}
	if err := idx.Build(ctx, entries); err != nil {
		return nil, nil, nil, err
	}
	return entries, f, idx, nil
}

// GetFilterData returns a fresh copy of the default filter, initializing the
// category first when needed.
func (l *Loader) GetFilterData(ctx context.Context) (filter.Filter, error) {
	if err := l.Init(ctx, false); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.defaults.Clone(), nil
}

// Open asks the opener to show this category.
func (l *Loader) Open(ctx context.Context, opts OpenOptions) error {
	if opts.Filter != nil && !l.IsInitialized() {
		return fmt.Errorf("%w: %s", ErrNotInitialized, l.Category())
	}
	l.mu.RLock()
	o := l.opener
	l.mu.RUnlock()
	if o == nil {
		return ErrNoOpener
	}
	return o.OpenCategory(ctx, l.Category(), opts)
}

// ResetFilters replaces the live filter with a copy of the defaults.
func (l *Loader) ResetFilters() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.defaults != nil {
		l.live = l.defaults.Clone()
	}
}

// Filter returns the live filter, or nil before the first load. Callers
// that mutate it must serialize access themselves.
func (l *Loader) Filter() filter.Filter {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.live
}

// SetFilter replaces the live filter. It must belong to this category.
func (l *Loader) SetFilter(f filter.Filter) error {
	if f == nil || f.Category() != l.Category() {
		return fmt.Errorf("%w: %s", ErrFilterMismatch, l.Category())
	}
	l.mu.Lock()
	l.live = f
	l.mu.Unlock()
	return nil
}

// Entries returns the loaded entries in load order.
func (l *Loader) Entries() []entry.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries
}

// Searcher returns the category's full-text index, or nil before the first
// load.
func (l *Loader) Searcher() filter.Searcher {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.index == nil {
		return nil
	}
	return l.index
}

// Results computes the live filter's results.
func (l *Loader) Results(ctx context.Context) ([]entry.Entry, error) {
	return l.ResultsFor(ctx, l.Filter())
}

// ResultsFor computes the results of f over the loaded entries.
func (l *Loader) ResultsFor(ctx context.Context, f filter.Filter) ([]entry.Entry, error) {
	l.mu.RLock()
	in := filter.Input{
		Entries: l.entries,
		Filter:  f,
		Memo:    &l.memo,
		Locale:  l.builder.SearchConfig().Locale,
	}
	if l.index != nil {
		in.Searcher = l.index
	}
	l.mu.RUnlock()
	return filter.ComputeResults(ctx, in)
}

// Close releases the search index.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index == nil {
		return nil
	}
	err := l.index.Close()
	l.index = nil
	return err
}
