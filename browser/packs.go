package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonwraymond/compendium/internal/logger"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/vocab"
)

// RebuildPackRegistry lists the source's packs and merges them with the
// saved load flags. Loaded categories keep their content until they are
// reloaded.
func (b *Browser) RebuildPackRegistry(ctx context.Context) error {
	packs, err := b.source.Packs(ctx)
	if err != nil {
		return fmt.Errorf("list packs: %w", err)
	}
	saved, err := b.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("read pack settings: %w", err)
	}
	reg := pack.Rebuild(packs, saved, b.defaults, b.locale)

	b.regMu.Lock()
	b.registry = reg
	b.regMu.Unlock()

	logger.FromContext(ctx).Debug("rebuilt pack registry",
		zap.Int("packs", len(packs)),
		zap.Int("loaded", len(reg.LoadedPacksAll())),
	)
	return nil
}

// LoadedPacks returns the ids of the packs c loads.
func (b *Browser) LoadedPacks(c vocab.Category) []string {
	b.regMu.RLock()
	defer b.regMu.RUnlock()
	return b.registry.LoadedPacks(c)
}

// LoadedPacksAll returns every loaded pack id, sorted and unique.
func (b *Browser) LoadedPacksAll() []string {
	b.regMu.RLock()
	defer b.regMu.RUnlock()
	return b.registry.LoadedPacksAll()
}

// PackSettings returns the packs registered for c with their load flags.
func (b *Browser) PackSettings(c vocab.Category) []pack.Entry {
	b.regMu.RLock()
	defer b.regMu.RUnlock()
	return b.registry.Packs(c)
}

// UpdatePackSettings changes whether c loads pack id and persists the
// registry. The change takes effect on the category's next load.
func (b *Browser) UpdatePackSettings(ctx context.Context, c vocab.Category, id string, load bool) error {
	if _, ok := b.loaders[c]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	b.regMu.Lock()
	if !b.registry.SetLoad(c, id, load) {
		b.regMu.Unlock()
		return fmt.Errorf("%w: %s in %s", pack.ErrUnknownPack, id, c)
	}
	s := b.registry.Settings()
	b.regMu.Unlock()

	if err := b.store.Set(ctx, s); err != nil {
		return fmt.Errorf("save pack settings: %w", err)
	}
	return nil
}
