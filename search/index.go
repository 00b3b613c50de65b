package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/jonwraymond/compendium/entry"
)

// Error values for search operations.
var (
	ErrNotBuilt     = errors.New("search index not built")
	ErrDuplicateKey = errors.New("duplicate entry uuid")
)

// DefaultStopWords are ignored at index and query time.
var DefaultStopWords = []string{"of", "th", "the"}

// Store field names understood by projection.
const (
	FieldName         = "name"
	FieldOriginalName = "originalName"
	FieldImage        = "img"
	FieldUUID         = "uuid"
	FieldDomains      = "domains"
	FieldLevel        = "level"
	FieldRank         = "rank"
	FieldPrice        = "price"
	FieldRarity       = "rarity"
	FieldActionGlyph  = "actionGlyph"
)

// Config declares what an index searches and returns.
type Config struct {
	// Fields are the searchable text fields. Default: name, originalName.
	Fields []string

	// StoreFields are copied onto each hit. Default: name, originalName,
	// img, uuid, domains.
	StoreFields []string

	// Locale drives lowercasing. Default: "en".
	Locale string

	// StopWords replaces DefaultStopWords when non-nil.
	StopWords []string
}

func (c Config) withDefaults() Config {
	if len(c.Fields) == 0 {
		c.Fields = []string{FieldName, FieldOriginalName}
	}
	if len(c.StoreFields) == 0 {
		c.StoreFields = []string{FieldName, FieldOriginalName, FieldImage, FieldUUID, FieldDomains}
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.StopWords == nil {
		c.StopWords = slices.Clone(DefaultStopWords)
	}
	return c
}

// Index is an in-memory full-text index over entries.
type Index struct {
	mu          sync.RWMutex
	cfg         Config
	mapping     *mapping.IndexMappingImpl
	store       map[string]bool
	idx         bleve.Index
	docs        map[string]entry.Entry
	fingerprint string
}

// New creates an empty index. Call Build before Search.
func New(cfg Config) (*Index, error) {
	cfg = cfg.withDefaults()
	for _, f := range cfg.Fields {
		if f != FieldName && f != FieldOriginalName {
			return nil, fmt.Errorf("unsupported search field %q", f)
		}
	}

	m, err := newMapping(cfg)
	if err != nil {
		return nil, err
	}

	store := make(map[string]bool, len(cfg.StoreFields))
	for _, f := range cfg.StoreFields {
		store[f] = true
	}

	return &Index{
		cfg:     cfg,
		mapping: m,
		store:   store,
		docs:    map[string]entry.Entry{},
	}, nil
}

// Config returns the effective configuration.
func (i *Index) Config() Config {
	return i.cfg
}

// Build replaces the indexed entries. An unchanged entry set keeps the
// existing index.
func (i *Index) Build(ctx context.Context, entries []entry.Entry) error {
	fp := computeFingerprint(entries)

	i.mu.RLock()
	unchanged := i.idx != nil && fp == i.fingerprint
	i.mu.RUnlock()
	if unchanged {
		return nil
	}

	idx, err := bleve.NewMemOnly(i.mapping)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	docs := make(map[string]entry.Entry, len(entries))
	batch := idx.NewBatch()
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			_ = idx.Close()
			return err
		}
		if _, dup := docs[e.UUID]; dup {
			_ = idx.Close()
			return fmt.Errorf("%w: %s", ErrDuplicateKey, e.UUID)
		}
		docs[e.UUID] = e
		if err := batch.Index(e.UUID, i.document(e)); err != nil {
			_ = idx.Close()
			return fmt.Errorf("index %s: %w", e.UUID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return fmt.Errorf("apply batch: %w", err)
	}

	i.mu.Lock()
	old := i.idx
	i.idx = idx
	i.docs = docs
	i.fingerprint = fp
	i.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

func (i *Index) document(e entry.Entry) map[string]any {
	doc := make(map[string]any, len(i.cfg.Fields))
	for _, f := range i.cfg.Fields {
		switch f {
		case FieldName:
			doc[f] = e.Name
		case FieldOriginalName:
			if e.OriginalName != "" {
				doc[f] = e.OriginalName
			}
		}
	}
	return doc
}

// Tokenize runs text through the index analyzer.
func (i *Index) Tokenize(text string) []string {
	analyzer := i.mapping.AnalyzerNamed(AnalyzerName)
	if analyzer == nil {
		return nil
	}
	stream := analyzer.Analyze([]byte(text))
	out := make([]string, 0, len(stream))
	for _, tok := range stream {
		out = append(out, string(tok.Term))
	}
	return out
}

// Search returns the entries matching every query token by prefix, projected
// to the store fields. A query that analyzes to no tokens matches nothing.
func (i *Index) Search(ctx context.Context, text string) ([]entry.Entry, error) {
	tokens := i.Tokenize(text)

	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.idx == nil {
		return nil, ErrNotBuilt
	}
	if len(tokens) == 0 || len(i.docs) == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(i.query(tokens), len(i.docs), 0, false)
	res, err := i.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}

	out := make([]entry.Entry, 0, len(res.Hits))
	for _, hit := range res.Hits {
		e, ok := i.docs[hit.ID]
		if !ok {
			continue
		}
		out = append(out, i.project(e))
	}
	return out, nil
}

func (i *Index) query(tokens []string) query.Query {
	terms := make([]query.Query, 0, len(tokens))
	for _, tok := range tokens {
		fields := make([]query.Query, 0, len(i.cfg.Fields))
		for _, f := range i.cfg.Fields {
			pq := bleve.NewPrefixQuery(tok)
			pq.SetField(f)
			fields = append(fields, pq)
		}
		terms = append(terms, bleve.NewDisjunctionQuery(fields...))
	}
	return bleve.NewConjunctionQuery(terms...)
}

func (i *Index) project(e entry.Entry) entry.Entry {
	var out entry.Entry
	if i.store[FieldName] {
		out.Name = e.Name
	}
	if i.store[FieldOriginalName] {
		out.OriginalName = e.OriginalName
	}
	if i.store[FieldImage] {
		out.Image = e.Image
	}
	if i.store[FieldUUID] {
		out.UUID = e.UUID
	}
	if i.store[FieldDomains] {
		out.Domains = e.Domains
	}
	if i.store[FieldLevel] {
		out.Level = e.Level
	}
	if i.store[FieldRank] {
		out.Rank = e.Rank
	}
	if i.store[FieldPrice] {
		out.Price = e.Price
	}
	if i.store[FieldRarity] {
		out.Rarity = e.Rarity
	}
	if i.store[FieldActionGlyph] {
		out.ActionGlyph = e.ActionGlyph
	}
	return out
}

// Len returns the number of indexed entries.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.docs)
}

// Close releases the underlying index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.idx == nil {
		return nil
	}
	err := i.idx.Close()
	i.idx = nil
	i.docs = map[string]entry.Entry{}
	i.fingerprint = ""
	return err
}
