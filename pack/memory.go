package pack

import (
	"context"
	"iter"
	"slices"
)

// MemoryPack is a pack held in memory as decoded JSON documents.
type MemoryPack struct {
	Metadata Metadata
	Docs     []map[string]any
}

// MemorySource serves packs from memory. It is safe for concurrent reads.
type MemorySource struct {
	packs []MemoryPack
}

// NewMemorySource creates a source over packs. Record types are derived
// from the documents.
func NewMemorySource(packs ...MemoryPack) *MemorySource {
	out := make([]MemoryPack, len(packs))
	for i, p := range packs {
		p.Metadata.Types = recordTypes(p.Docs)
		out[i] = p
	}
	return &MemorySource{packs: out}
}

// Packs implements Source.
func (s *MemorySource) Packs(ctx context.Context) ([]Metadata, error) {
	out := make([]Metadata, 0, len(s.packs))
	for _, p := range s.packs {
		out = append(out, p.Metadata)
	}
	return out, ctx.Err()
}

// Load implements Source.
func (s *MemorySource) Load(ctx context.Context, docType DocumentType, ids []string, fields []string) iter.Seq2[Index, error] {
	return func(yield func(Index, error) bool) {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				yield(Index{}, err)
				return
			}
			i := slices.IndexFunc(s.packs, func(p MemoryPack) bool { return p.Metadata.ID == id })
			if i < 0 || s.packs[i].Metadata.Type != docType {
				continue
			}
			p := s.packs[i]
			idx := Index{Pack: p.Metadata, Records: make([]Record, 0, len(p.Docs))}
			for _, doc := range p.Docs {
				idx.add(doc, fields)
			}
			if !yield(idx, nil) {
				return
			}
		}
	}
}

func recordTypes(docs []map[string]any) []string {
	var types []string
	for _, d := range docs {
		t, _ := d["type"].(string)
		if t != "" && !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	return types
}
