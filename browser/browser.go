package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jonwraymond/compendium/category"
	"github.com/jonwraymond/compendium/entry"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/i18n"
	"github.com/jonwraymond/compendium/internal/logger"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/settings"
	"github.com/jonwraymond/compendium/vocab"
)

// DefaultResultLimit is how many results are visible after opening a
// category, and how many more each LoadMore reveals.
const DefaultResultLimit = 100

// CampaignNone is the campaign type that hides campaign features.
const CampaignNone = "none"

// Options configures a Browser.
type Options struct {
	// Source provides the packs.
	// If nil, the browser has no content.
	Source pack.Source

	// Settings persists pack load flags.
	// If nil, flags are kept in memory.
	Settings settings.Store

	// Defaults decide pack load flags nothing was saved for.
	// If nil, pack.DefaultLoadDefaults() is used.
	Defaults *pack.Defaults

	// Localizer translates option labels.
	// If nil, English labels are used.
	Localizer i18n.Localizer

	// GM unlocks GM-only categories.
	GM bool

	// CampaignType is the world's campaign. CampaignNone hides campaign
	// features.
	CampaignType string

	// ResultLimit is the visible window size and LoadMore step.
	// Default: DefaultResultLimit.
	ResultLimit int

	// Builders overrides the category builders.
	// If nil, category.Builders(Localizer) is used.
	Builders []category.Builder
}

// EventKind says what changed.
type EventKind int

const (
	// EventOpened fires when a category becomes active or is re-opened.
	EventOpened EventKind = iota
	// EventFilterChanged fires when the active filter is edited or reset.
	EventFilterChanged
	// EventLimitChanged fires when LoadMore widens the window.
	EventLimitChanged
	// EventReloaded fires after ResetInitializedCategories.
	EventReloaded
	// EventClosed fires when the browser is closed.
	EventClosed
)

// Event is delivered to OnChange listeners.
type Event struct {
	Kind     EventKind
	Category vocab.Category
}

// Browser drives the categories: which one is active, its filter and how
// many of its results are visible.
type Browser struct {
	source   pack.Source
	store    settings.Store
	defaults pack.Defaults
	locale   string
	gm       bool
	campaign string
	step     int
	order    []vocab.Category
	loaders  map[vocab.Category]*category.Loader

	regMu    sync.RWMutex
	registry *pack.Registry

	mu        sync.Mutex
	active    vocab.Category
	filter    filter.Filter
	shared    bool
	limits    map[vocab.Category]int
	visible   map[vocab.Category]bool
	listeners map[int]func(Event)
	nextID    int
}

// New creates a browser and builds the pack registry from the source and the
// saved settings. No category is loaded until it is opened.
func New(ctx context.Context, opts Options) (*Browser, error) {
	if opts.Source == nil {
		opts.Source = pack.NewMemorySource()
	}
	if opts.Settings == nil {
		opts.Settings = settings.NewMemoryStore()
	}
	defaults := pack.DefaultLoadDefaults()
	if opts.Defaults != nil {
		defaults = *opts.Defaults
	}
	if opts.Localizer == nil {
		opts.Localizer = i18n.English()
	}
	if opts.ResultLimit <= 0 {
		opts.ResultLimit = DefaultResultLimit
	}
	if opts.Builders == nil {
		opts.Builders = category.Builders(opts.Localizer)
	}

	b := &Browser{
		source:    opts.Source,
		store:     opts.Settings,
		defaults:  defaults,
		locale:    opts.Localizer.Lang(),
		gm:        opts.GM,
		campaign:  opts.CampaignType,
		step:      opts.ResultLimit,
		loaders:   make(map[vocab.Category]*category.Loader, len(opts.Builders)),
		registry:  pack.Rebuild(nil, nil, defaults, opts.Localizer.Lang()),
		limits:    make(map[vocab.Category]int, len(opts.Builders)),
		listeners: make(map[int]func(Event)),
	}
	for _, bd := range opts.Builders {
		c := bd.Category()
		if _, dup := b.loaders[c]; dup {
			return nil, fmt.Errorf("duplicate builder for category %s", c)
		}
		b.order = append(b.order, c)
		b.loaders[c] = category.NewLoader(bd, category.LoaderOptions{
			Source: b.source,
			Packs:  b,
			Opener: b,
		})
		b.limits[c] = b.step
	}

	visible, err := b.visibility("", category.OpenOptions{})
	if err != nil {
		return nil, err
	}
	b.visible = visible

	if err := b.RebuildPackRegistry(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// Categories returns the served categories in navigation order.
func (b *Browser) Categories() []vocab.Category {
	return append([]vocab.Category(nil), b.order...)
}

// Loader returns the loader of a category.
func (b *Browser) Loader(c vocab.Category) (*category.Loader, bool) {
	l, ok := b.loaders[c]
	return l, ok
}

func (b *Browser) loader(c vocab.Category) (*category.Loader, error) {
	l, ok := b.loaders[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return l, nil
}

// OpenCategory makes c the active category. A supplied filter becomes the
// active filter; it requires c to have loaded before. Otherwise the
// category's live filter is used. Re-opening the active category resets its
// result window.
func (b *Browser) OpenCategory(ctx context.Context, c vocab.Category, opts category.OpenOptions) error {
	l, err := b.loader(c)
	if err != nil {
		return err
	}
	if l.GMOnly() && !b.gm {
		return fmt.Errorf("%w: %s", ErrGMOnly, c)
	}
	if opts.Filter != nil {
		if !l.IsInitialized() {
			return fmt.Errorf("%w: %s", ErrNotInitialized, c)
		}
		if opts.Filter.Category() != c {
			return fmt.Errorf("%w: %s", category.ErrFilterMismatch, c)
		}
	}
	if err := l.Init(ctx, false); err != nil {
		return err
	}
	visible, err := b.visibility(c, opts)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.visible = visible
	if opts.Filter != nil {
		b.filter = opts.Filter
		b.shared = false
	} else {
		b.filter = l.Filter()
		b.shared = true
	}
	if b.active == c {
		b.limits[c] = b.step
	} else {
		b.active = c
	}
	b.mu.Unlock()

	logger.FromContext(ctx).Debug("opened category",
		zap.String("category", string(c)),
		zap.Bool("presetFilter", opts.Filter != nil),
	)
	b.notify(Event{Kind: EventOpened, Category: c})
	return nil
}

// visibility computes which categories navigation shows when c opens.
func (b *Browser) visibility(c vocab.Category, opts category.OpenOptions) (map[vocab.Category]bool, error) {
	visible := make(map[vocab.Category]bool, len(b.order))
	switch {
	case opts.HideNavigation:
	case len(opts.ShowCategories) > 0:
		for _, s := range opts.ShowCategories {
			if _, ok := b.loaders[s]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
			}
			visible[s] = true
		}
		visible[c] = true
	default:
		for _, s := range b.order {
			visible[s] = true
		}
	}

	if b.campaign == CampaignNone {
		delete(visible, vocab.CampaignFeature)
	}
	if !b.gm {
		for s := range visible {
			if b.loaders[s].GMOnly() {
				delete(visible, s)
			}
		}
	}
	return visible, nil
}

// Visible reports whether navigation shows c.
func (b *Browser) Visible(c vocab.Category) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible[c]
}

// VisibleCategories returns the shown categories in navigation order.
func (b *Browser) VisibleCategories() []vocab.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []vocab.Category
	for _, c := range b.order {
		if b.visible[c] {
			out = append(out, c)
		}
	}
	return out
}

// ActiveCategory returns the active category, or "" when none is.
func (b *Browser) ActiveCategory() vocab.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// ActiveFilter returns the active filter, or nil when no category is active.
func (b *Browser) ActiveFilter() filter.Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// activeLocked returns the active loader and filter. b.mu must be held.
func (b *Browser) activeLocked() (*category.Loader, filter.Filter, error) {
	if b.active == "" || b.filter == nil {
		return nil, nil, ErrNoActiveCategory
	}
	return b.loaders[b.active], b.filter, nil
}

// Results computes every result of the active filter.
func (b *Browser) Results(ctx context.Context) ([]entry.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, f, err := b.activeLocked()
	if err != nil {
		return nil, err
	}
	return l.ResultsFor(ctx, f)
}

// VisibleResults returns the first ResultLimit results.
func (b *Browser) VisibleResults(ctx context.Context) ([]entry.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, f, err := b.activeLocked()
	if err != nil {
		return nil, err
	}
	results, err := l.ResultsFor(ctx, f)
	if err != nil {
		return nil, err
	}
	return filter.Window(results, b.limits[b.active]), nil
}

// ResultLimit returns the active category's visible window size.
func (b *Browser) ResultLimit() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == "" {
		return b.step
	}
	return b.limits[b.active]
}

// LoadMore widens the active category's window by one step and returns the
// new limit.
func (b *Browser) LoadMore() (int, error) {
	b.mu.Lock()
	if b.active == "" {
		b.mu.Unlock()
		return 0, ErrNoActiveCategory
	}
	c := b.active
	b.limits[c] += b.step
	limit := b.limits[c]
	b.mu.Unlock()

	b.notify(Event{Kind: EventLimitChanged, Category: c})
	return limit, nil
}

// UpdateFilter runs fn on the active filter under the browser lock. The
// result window is reset.
func (b *Browser) UpdateFilter(fn func(filter.Filter) error) error {
	b.mu.Lock()
	_, f, err := b.activeLocked()
	if err != nil {
		b.mu.Unlock()
		return err
	}
	if err := fn(f); err != nil {
		b.mu.Unlock()
		return err
	}
	c := b.active
	b.limits[c] = b.step
	b.mu.Unlock()

	b.notify(Event{Kind: EventFilterChanged, Category: c})
	return nil
}

// ApplySelections applies s to the active filter. An invalid selection
// leaves the filter unchanged.
func (b *Browser) ApplySelections(s filter.Selections) error {
	b.mu.Lock()
	l, f, err := b.activeLocked()
	if err != nil {
		b.mu.Unlock()
		return err
	}
	out, err := filter.Apply(f, s, l.RangeParser())
	if err != nil {
		b.mu.Unlock()
		return err
	}
	if b.shared {
		if err := l.SetFilter(out); err != nil {
			b.mu.Unlock()
			return err
		}
	}
	b.filter = out
	c := b.active
	b.limits[c] = b.step
	b.mu.Unlock()

	b.notify(Event{Kind: EventFilterChanged, Category: c})
	return nil
}

// SetSearchText replaces the active filter's search text.
func (b *Browser) SetSearchText(text string) error {
	return b.UpdateFilter(func(f filter.Filter) error {
		f.Base().Search.Text = text
		return nil
	})
}

// ResetFilters restores the active category's default filter and makes it
// the active filter.
func (b *Browser) ResetFilters() error {
	b.mu.Lock()
	l, _, err := b.activeLocked()
	if err != nil {
		b.mu.Unlock()
		return err
	}
	l.ResetFilters()
	b.filter = l.Filter()
	b.shared = true
	c := b.active
	b.limits[c] = b.step
	b.mu.Unlock()

	b.notify(Event{Kind: EventFilterChanged, Category: c})
	return nil
}

// GetFilterData returns a fresh default filter for c, loading c first when
// needed.
func (b *Browser) GetFilterData(ctx context.Context, c vocab.Category) (filter.Filter, error) {
	l, err := b.loader(c)
	if err != nil {
		return nil, err
	}
	return l.GetFilterData(ctx)
}

// SuggestTraits returns up to limit trait options of c whose label
// fuzzy-matches query. limit 0 means no limit.
func (b *Browser) SuggestTraits(ctx context.Context, c vocab.Category, query string, limit int) ([]filter.Option, error) {
	f, err := b.GetFilterData(ctx, c)
	if err != nil {
		return nil, err
	}
	return f.Base().Traits.Suggest(query, limit), nil
}

// TableResults exports the active results as random table rows.
func (b *Browser) TableResults(ctx context.Context, opts category.TableOptions) ([]category.TableRow, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, f, err := b.activeLocked()
	if err != nil {
		return nil, err
	}
	return l.TableResultsFor(ctx, f, opts)
}

// ResetInitializedCategories reloads every category that has loaded, then
// clears the active category. Categories that fail to reload keep their
// previous content; their errors are joined.
func (b *Browser) ResetInitializedCategories(ctx context.Context) error {
	var errs []error
	for _, c := range b.order {
		l := b.loaders[c]
		if !l.IsInitialized() {
			continue
		}
		if err := l.Init(ctx, true); err != nil {
			errs = append(errs, err)
		}
	}

	b.mu.Lock()
	b.active = ""
	b.filter = nil
	b.shared = false
	b.mu.Unlock()

	b.notify(Event{Kind: EventReloaded})
	return errors.Join(errs...)
}

// Close clears the search text of every category and of the active filter.
// Loaded content is kept.
func (b *Browser) Close() {
	b.mu.Lock()
	for _, c := range b.order {
		if f := b.loaders[c].Filter(); f != nil {
			f.Base().Search.Text = ""
		}
	}
	if b.filter != nil {
		b.filter.Base().Search.Text = ""
	}
	c := b.active
	b.mu.Unlock()

	b.notify(Event{Kind: EventClosed, Category: c})
}

// Shutdown releases every loader's search index.
func (b *Browser) Shutdown() error {
	var errs []error
	for _, c := range b.order {
		if err := b.loaders[c].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", c, err))
		}
	}
	return errors.Join(errs...)
}

// OnChange registers fn for every Event and returns a function that
// unregisters it. Listeners run after the change, outside the browser lock.
func (b *Browser) OnChange(fn func(Event)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

func (b *Browser) notify(ev Event) {
	b.mu.Lock()
	fns := make([]func(Event), 0, len(b.listeners))
	for id := 0; id < b.nextID; id++ {
		if fn, ok := b.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
