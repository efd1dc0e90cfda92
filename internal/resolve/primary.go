package resolve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// PrimaryName is the name of the .ogg pool.
const PrimaryName = "primary"

var formVariants = map[string]string{
	"galarian": "galar",
	"hisuian":  "hisui",
}

// PrimaryPool serves .ogg files named "<species>.ogg" or "<species>-<form>*.ogg".
type PrimaryPool struct {
	dir       string
	overrides Overrides

	once    sync.Once
	files   []string
	present map[string]struct{}
	listErr error
}

// NewPrimaryPool creates a pool over dir. A missing directory is an empty pool.
func NewPrimaryPool(dir string, overrides Overrides) *PrimaryPool {
	return &PrimaryPool{dir: dir, overrides: overrides}
}

// Name implements Pool.
func (p *PrimaryPool) Name() string { return PrimaryName }

// Find implements Pool.
func (p *PrimaryPool) Find(_ context.Context, key Key) (Match, bool, error) {
	key = key.baseForm()
	if override, ok := p.overrides[key]; ok {
		if override.Silent {
			return Match{}, false, nil
		}
		path := filepath.Join(p.dir, override.Asset+".ogg")
		return Match{Path: path, Source: path, Pool: PrimaryName, Tier: TierOverride}, true, nil
	}

	if err := p.load(); err != nil {
		return Match{}, false, err
	}

	name, ok := p.search(key)
	if !ok {
		return Match{}, false, nil
	}
	path := filepath.Join(p.dir, name)
	return Match{Path: path, Source: path, Pool: PrimaryName, Tier: TierSearch}, true, nil
}

func (p *PrimaryPool) search(key Key) (string, bool) {
	if key.Form == "" {
		name := key.Entity + ".ogg"
		_, ok := p.present[name]
		return name, ok
	}

	form := key.Form
	if variant, ok := formVariants[form]; ok {
		form = variant
	}
	prefix := key.Entity + "-" + form
	for _, name := range p.files {
		if strings.HasPrefix(name, prefix) {
			return name, true
		}
	}
	return "", false
}

func (p *PrimaryPool) load() error {
	p.once.Do(func() {
		entries, err := os.ReadDir(p.dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return
			}
			p.listErr = fmt.Errorf("list %s pool: %w", PrimaryName, err)
			return
		}
		p.present = make(map[string]struct{}, len(entries))
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".ogg" {
				continue
			}
			p.files = append(p.files, entry.Name())
			p.present[entry.Name()] = struct{}{}
		}
		slices.Sort(p.files)
	})
	return p.listErr
}
