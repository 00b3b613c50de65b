package search

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/length"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	unicodetok "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/analysis/tokenmap"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/registry"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AnalyzerName is the analyzer applied to searchable fields and queries.
const AnalyzerName = "compendium"

// NormalizeFilterType is the registered token filter type that lowercases,
// folds accents and strips quotes.
const NormalizeFilterType = "compendium_normalize"

const (
	stopMapName       = "compendium_stop"
	stopFilterName    = "compendium_stop_filter"
	normalizeInstance = "compendium_normalize_locale"
	lengthFilterName  = "compendium_min_length"
)

func init() {
	registry.RegisterTokenFilter(NormalizeFilterType, normalizeFilterConstructor)
}

type normalizeFilter struct {
	lang language.Tag
}

func normalizeFilterConstructor(config map[string]interface{}, _ *registry.Cache) (analysis.TokenFilter, error) {
	lang := language.Und
	if locale, ok := config["locale"].(string); ok && locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("normalize filter locale %q: %w", locale, err)
		}
		lang = parsed
	}
	return &normalizeFilter{lang: lang}, nil
}

// Filter normalizes each token in place and drops tokens left empty.
func (f *normalizeFilter) Filter(input analysis.TokenStream) analysis.TokenStream {
	// cases.Caser carries state and is not safe for concurrent use.
	lower := cases.Lower(f.lang)
	out := input[:0]
	for _, tok := range input {
		term := normalizeTerm(lower, string(tok.Term))
		if term == "" {
			continue
		}
		tok.Term = []byte(term)
		out = append(out, tok)
	}
	return out
}

var quoteReplacer = strings.NewReplacer(
	`'`, "",
	`"`, "",
	"‘", "",
	"’", "",
	"“", "",
	"”", "",
)

func normalizeTerm(lower cases.Caser, s string) string {
	return quoteReplacer.Replace(foldAccents(lower.String(s)))
}

// foldAccents removes combining marks, so "Élan" and "elan" compare equal.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func newMapping(cfg Config) (*mapping.IndexMappingImpl, error) {
	m := bleve.NewIndexMapping()

	stopTokens := make([]interface{}, 0, len(cfg.StopWords))
	for _, w := range cfg.StopWords {
		stopTokens = append(stopTokens, w)
	}
	if err := m.AddCustomTokenMap(stopMapName, map[string]interface{}{
		"type":   tokenmap.Name,
		"tokens": stopTokens,
	}); err != nil {
		return nil, fmt.Errorf("stop words: %w", err)
	}
	if err := m.AddCustomTokenFilter(stopFilterName, map[string]interface{}{
		"type":           stop.Name,
		"stop_token_map": stopMapName,
	}); err != nil {
		return nil, fmt.Errorf("stop filter: %w", err)
	}
	if err := m.AddCustomTokenFilter(normalizeInstance, map[string]interface{}{
		"type":   NormalizeFilterType,
		"locale": cfg.Locale,
	}); err != nil {
		return nil, fmt.Errorf("normalize filter: %w", err)
	}
	if err := m.AddCustomTokenFilter(lengthFilterName, map[string]interface{}{
		"type": length.Name,
		"min":  2.0,
	}); err != nil {
		return nil, fmt.Errorf("length filter: %w", err)
	}
	if err := m.AddCustomAnalyzer(AnalyzerName, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": unicodetok.Name,
		"token_filters": []interface{}{
			normalizeInstance,
			stopFilterName,
			lengthFilterName,
		},
	}); err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	m.DefaultAnalyzer = AnalyzerName

	doc := bleve.NewDocumentStaticMapping()
	for _, field := range cfg.Fields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = AnalyzerName
		fm.Store = false
		fm.IncludeInAll = false
		fm.IncludeTermVectors = false
		doc.AddFieldMappingsAt(field, fm)
	}
	m.DefaultMapping = doc

	return m, nil
}
