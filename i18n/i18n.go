// Package i18n provides label localization backed by YAML catalogs.
package i18n

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Localizer translates label keys.
type Localizer interface {
	// Localize returns the translation of key, or key itself when unknown.
	Localize(key string) string
	// Format localizes key and substitutes {name} placeholders.
	Format(key string, vars map[string]string) string
	// Lang returns the BCP 47 language tag used for collation and casing.
	Lang() string
}

// ErrEmptyLang is returned for catalogs without a language tag.
var ErrEmptyLang = errors.New("catalog has no lang")

// Catalog is an in-memory message table.
type Catalog struct {
	lang     string
	messages map[string]string
}

type catalogFile struct {
	Lang     string            `yaml:"lang"`
	Messages map[string]string `yaml:"messages"`
}

// NewCatalog creates a catalog for lang with the given messages.
func NewCatalog(lang string, messages map[string]string) *Catalog {
	if messages == nil {
		messages = map[string]string{}
	}
	return &Catalog{lang: lang, messages: messages}
}

// English is the identity catalog: labels are already English.
func English() *Catalog {
	return NewCatalog("en", nil)
}

// LoadCatalog decodes a YAML catalog:
//
//	lang: fr
//	messages:
//	  Fire: Feu
//	  "{size} results exceed {maxSize}": "{size} résultats dépassent {maxSize}"
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if f.Lang == "" {
		return nil, ErrEmptyLang
	}
	return NewCatalog(f.Lang, f.Messages), nil
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Localize implements Localizer.
func (c *Catalog) Localize(key string) string {
	if msg, ok := c.messages[key]; ok && msg != "" {
		return msg
	}
	return key
}

// Format implements Localizer.
func (c *Catalog) Format(key string, vars map[string]string) string {
	msg := c.Localize(key)
	if len(vars) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Lang implements Localizer.
func (c *Catalog) Lang() string {
	return c.lang
}
