package category

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/compendium/domain"
	"github.com/jonwraymond/compendium/entry"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/i18n"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/search"
	"github.com/jonwraymond/compendium/vocab"
)

// Error values for category operations.
var (
	ErrMissingField   = errors.New("record is missing a required field")
	ErrNotInitialized = errors.New("category not initialized")
	ErrNoOpener       = errors.New("no opener configured")
	ErrFilterMismatch = errors.New("filter belongs to another category")
	ErrTooManyResults = errors.New("too many results for a table")
)

// Builder converts one category's pack records into entries.
type Builder interface {
	// Category names the category the builder serves.
	Category() vocab.Category
	// DocumentType is the document class of the category's packs.
	DocumentType() pack.DocumentType
	// Fields are the record paths the builder reads.
	Fields() []string
	// SearchConfig describes the category's full-text index.
	SearchConfig() search.Config
	// GMOnly hides the category from players.
	GMOnly() bool
	// NewFilter returns the pristine, localized filter schema.
	NewFilter() filter.Filter
	// RangeParser parses the category's range inputs.
	RangeParser() filter.RangeParser
	// Begin starts a load.
	Begin() Batch
}

// Batch accumulates one load. It is not safe for concurrent use.
type Batch interface {
	// Add converts r. ok is false for records of a type the category does
	// not browse. A non-nil error means r was malformed and is skipped.
	Add(p pack.Metadata, r pack.Record) (e entry.Entry, ok bool, err error)
	// Finish fills f's options from the records added so far.
	Finish(f filter.Filter)
}

// Builders returns a builder for every category, in navigation order.
func Builders(l i18n.Localizer) []Builder {
	return []Builder{
		NewAction(l),
		NewBestiary(l),
		NewCampaignFeature(l),
		NewEquipment(l),
		NewFeat(l),
		NewHazard(l),
		NewSpell(l),
	}
}

// base holds what every builder shares.
type base struct {
	category vocab.Category
	docType  pack.DocumentType
	fields   []string
	store    []string
	gmOnly   bool
	l        i18n.Localizer
}

func (b base) Category() vocab.Category { return b.category }

func (b base) DocumentType() pack.DocumentType { return b.docType }

func (b base) Fields() []string { return b.fields }

func (b base) GMOnly() bool { return b.gmOnly }

func (b base) RangeParser() filter.RangeParser { return filter.ParseRangeInput }

func (b base) SearchConfig() search.Config {
	return search.Config{
		Fields:      []string{search.FieldName, search.FieldOriginalName},
		StoreFields: b.store,
		Locale:      b.l.Lang(),
	}
}

func storeFields(extra ...string) []string {
	return append([]string{
		search.FieldName,
		search.FieldOriginalName,
		search.FieldImage,
		search.FieldUUID,
		search.FieldDomains,
	}, extra...)
}

// collector gathers the values a batch turns into source options.
type collector struct {
	publications []string
}

// source records the record's publication and tags it.
func (c *collector) source(tags *domain.Set, p provenance) {
	name := p.name()
	if name == "" {
		return
	}
	c.publications = append(c.publications, name)
	tags.Add(domain.Tag("source", domain.Slug(name)))
}

func (c *collector) sourceOptions(locale string) []filter.Option {
	return filter.SourceOptions(c.publications, locale)
}

// newEntry starts an entry from the record header.
func newEntry(r pack.Record, tags *domain.Set) entry.Entry {
	return entry.Entry{
		Name:         r.Name,
		OriginalName: r.OriginalName,
		Image:        r.Image,
		UUID:         r.UUID,
		Domains:      tags,
	}
}

// addTraits tags each trait with the homebrew prefix removed.
func addTraits(tags *domain.Set, traits []string) {
	for _, t := range traits {
		if t = domain.StripHomebrew(t); t != "" {
			tags.Add(domain.Tag("trait", t))
		}
	}
}

// prefixed returns opts with values rewritten to "<prefix>:<value>".
func prefixed(opts []filter.Option, prefix string) []filter.Option {
	for i := range opts {
		opts[i].Value = domain.Tag(prefix, opts[i].Value)
	}
	return opts
}

// required reports the first path whose field is absent.
func required(checks ...check) error {
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrMissingField, c.path)
		}
	}
	return nil
}

type check struct {
	path string
	ok   bool
}

func has(path string, ok bool) check {
	return check{path: path, ok: ok}
}
