package pack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/compendium/internal/logger"
)

// MetadataFile names the pack descriptor inside a pack directory.
const MetadataFile = "pack.yaml"

// DirSource reads packs from a directory tree. Every subdirectory holding a
// pack.yaml is a pack; each *.json file beside it is one record:
//
//	packs/
//	  spells-srd/
//	    pack.yaml      # id, label, package, type
//	    fireball.json
type DirSource struct {
	root        string
	concurrency int
}

// NewDirSource creates a source rooted at root that reads at most
// concurrency packs at once.
func NewDirSource(root string, concurrency int) *DirSource {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DirSource{root: root, concurrency: concurrency}
}

// Root returns the directory the source reads.
func (s *DirSource) Root() string {
	return s.root
}

type dirPack struct {
	meta Metadata
	dir  string
}

func (s *DirSource) scan(ctx context.Context) ([]dirPack, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	var packs []dirPack
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(s.root, e.Name())
		b, err := os.ReadFile(filepath.Join(dir, MetadataFile))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var m Metadata
		if err := yaml.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPack, dir, err)
		}
		if m.ID == "" || (m.Type != Item && m.Type != Actor) {
			return nil, fmt.Errorf("%w: %s: id and type Item or Actor are required", ErrInvalidPack, dir)
		}
		packs = append(packs, dirPack{meta: m, dir: dir})
	}
	return packs, nil
}

// Packs implements Source. Record types are read from every record file.
func (s *DirSource) Packs(ctx context.Context) ([]Metadata, error) {
	packs, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Metadata, len(packs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range packs {
		g.Go(func() error {
			docs, _, err := readDocs(gctx, p.dir)
			if err != nil {
				return err
			}
			p.meta.Types = recordTypes(docs)
			out[i] = p.meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Load implements Source. Packs are read concurrently but yielded in the
// order of ids as soon as each is ready. A pack that fails to read yields
// its error and loading continues with the next one.
func (s *DirSource) Load(ctx context.Context, docType DocumentType, ids []string, fields []string) iter.Seq2[Index, error] {
	return func(yield func(Index, error) bool) {
		all, err := s.scan(ctx)
		if err != nil {
			yield(Index{}, err)
			return
		}

		var selected []dirPack
		for _, id := range ids {
			i := slices.IndexFunc(all, func(p dirPack) bool { return p.meta.ID == id })
			if i < 0 {
				logger.FromContext(ctx).Debug("pack not found", zap.String("pack", id))
				continue
			}
			if all[i].meta.Type == docType {
				selected = append(selected, all[i])
			}
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		type result struct {
			idx Index
			err error
		}
		results := make([]result, len(selected))
		ready := make([]chan struct{}, len(selected))
		for i := range ready {
			ready[i] = make(chan struct{})
		}

		var g errgroup.Group
		g.SetLimit(s.concurrency)
		finished := make(chan struct{})
		go func() {
			defer close(finished)
			for i, p := range selected {
				g.Go(func() error {
					defer close(ready[i])
					idx, err := readPack(ctx, p, fields)
					results[i] = result{idx: idx, err: err}
					return nil
				})
			}
			_ = g.Wait()
		}()
		defer func() {
			cancel()
			<-finished
		}()

		for i := range selected {
			select {
			case <-ready[i]:
			case <-ctx.Done():
				yield(Index{}, ctx.Err())
				return
			}
			if !yield(results[i].idx, results[i].err) {
				return
			}
		}
	}
}

func readPack(ctx context.Context, p dirPack, fields []string) (Index, error) {
	docs, invalid, err := readDocs(ctx, p.dir)
	if err != nil {
		return Index{}, err
	}
	meta := p.meta
	meta.Types = recordTypes(docs)
	idx := Index{Pack: meta, Records: make([]Record, 0, len(docs)), Invalid: invalid}
	for _, doc := range docs {
		idx.add(doc, fields)
	}
	return idx, nil
}

// readDocs decodes every record file in dir. Files that are not a JSON
// object are returned as invalid records named after the file.
func readDocs(ctx context.Context, dir string) ([]map[string]any, []InvalidRecord, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(files)

	docs := make([]map[string]any, 0, len(files))
	var invalid []InvalidRecord
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, nil, err
		}
		var doc map[string]any
		if err := json.Unmarshal(b, &doc); err != nil {
			invalid = append(invalid, InvalidRecord{
				ID:  strings.TrimSuffix(filepath.Base(f), ".json"),
				Err: fmt.Errorf("%w: decode %s: %v", ErrInvalidField, filepath.Base(f), err),
			})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, invalid, nil
}
