// Package pack reads content packs: named collections of raw records that a
// category loader turns into index entries.
//
// Records are delivered as partial documents restricted to the fields a
// category asked for, plus the header fields every record carries.
package pack

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
)

// DocumentType is the document class a pack holds.
type DocumentType string

// Document types.
const (
	Item  DocumentType = "Item"
	Actor DocumentType = "Actor"
)

// Error values returned by pack sources.
var (
	ErrUnknownPack  = errors.New("unknown pack")
	ErrInvalidPack  = errors.New("invalid pack metadata")
	ErrInvalidField = errors.New("invalid record field")
)

// Metadata describes one pack.
type Metadata struct {
	ID      string       `json:"id" yaml:"id"`
	Label   string       `json:"label" yaml:"label"`
	Package string       `json:"package" yaml:"package"`
	Type    DocumentType `json:"type" yaml:"type"`
	// Types lists the distinct record types found in the pack.
	Types []string `json:"types,omitempty" yaml:"-"`
}

// Record is a partial document.
type Record struct {
	ID           string
	UUID         string
	Type         string
	Name         string
	OriginalName string
	Image        string
	// Raw holds the projected document as JSON.
	Raw json.RawMessage
}

// Decode unmarshals the projected document into v.
func (r Record) Decode(v any) error {
	return json.Unmarshal(r.Raw, v)
}

// InvalidRecord is a document whose header fields could not be read. It is
// reported alongside the pack instead of failing it.
type InvalidRecord struct {
	ID   string
	Name string
	Err  error
}

// Index is the projected content of one pack.
type Index struct {
	Pack    Metadata
	Records []Record
	Invalid []InvalidRecord
}

// add appends the projection of doc, or notes it as invalid.
func (idx *Index) add(doc map[string]any, fields []string) {
	r, err := newRecord(idx.Pack, doc, fields)
	if err != nil {
		idx.Invalid = append(idx.Invalid, InvalidRecord{ID: r.ID, Name: r.Name, Err: err})
		return
	}
	idx.Records = append(idx.Records, r)
}

// Source enumerates and loads packs.
type Source interface {
	// Packs lists every available pack with its record types.
	Packs(ctx context.Context) ([]Metadata, error)
	// Load yields the packs named by ids that hold docType documents, in
	// the order of ids. Unknown ids are skipped. Each record is projected
	// to fields.
	Load(ctx context.Context, docType DocumentType, ids []string, fields []string) iter.Seq2[Index, error]
}
