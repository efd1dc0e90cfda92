package resolve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"cryswap/internal/logging"
	"cryswap/internal/textutil"
)

// FuzzyName is the name of the .wav pool.
const FuzzyName = "fuzzy"

// DefaultThreshold is the lowest similarity a search match is accepted at.
const DefaultThreshold = 0.8

// Scorer rates how similar a candidate name is to a target name, in [0, 1].
type Scorer func(candidate, target string) float64

type candidate struct {
	path string
	name string
}

// FuzzyPool serves .wav files named like "888C - Zacian (Crowned Sword).wav".
// Matches are converted to .ogg into a ConversionCache.
type FuzzyPool struct {
	dir        string
	overrides  Overrides
	cache      *ConversionCache
	transcoder Transcoder
	threshold  float64
	score      Scorer
	logger     *slog.Logger

	once       sync.Once
	candidates []candidate
	indexErr   error
}

// FuzzyOption configures a FuzzyPool.
type FuzzyOption func(*FuzzyPool)

// WithThreshold sets the acceptance threshold. Non-positive values are ignored.
func WithThreshold(threshold float64) FuzzyOption {
	return func(p *FuzzyPool) {
		if threshold > 0 {
			p.threshold = threshold
		}
	}
}

// WithScorer replaces the Jaro-Winkler scorer.
func WithScorer(score Scorer) FuzzyOption {
	return func(p *FuzzyPool) {
		if score != nil {
			p.score = score
		}
	}
}

// WithLogger sets the pool logger.
func WithLogger(logger *slog.Logger) FuzzyOption {
	return func(p *FuzzyPool) {
		p.logger = logging.NewComponentLogger(logger, "resolve")
	}
}

// NewFuzzyPool creates a pool over dir converting into cache with transcoder.
func NewFuzzyPool(dir string, overrides Overrides, cache *ConversionCache, transcoder Transcoder, opts ...FuzzyOption) *FuzzyPool {
	p := &FuzzyPool{
		dir:        dir,
		overrides:  overrides,
		cache:      cache,
		transcoder: transcoder,
		threshold:  DefaultThreshold,
		score:      textutil.JaroWinkler,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.transcoder == nil {
		p.transcoder = NewFFmpeg("")
	}
	return p
}

// Name implements Pool.
func (p *FuzzyPool) Name() string { return FuzzyName }

// Find implements Pool.
func (p *FuzzyPool) Find(ctx context.Context, key Key) (Match, bool, error) {
	key = key.baseForm()

	if override, ok := p.overrides[key]; ok {
		if override.Silent {
			return Match{}, false, nil
		}
		source := filepath.Join(p.dir, override.Asset+".wav")
		if info, err := os.Stat(source); err != nil || info.IsDir() {
			return Match{}, false, &MissingAssetError{Key: key, Path: source}
		}
		return p.convert(ctx, key, Match{Source: source, Pool: FuzzyName, Tier: TierOverride})
	}

	if cached, ok := p.cache.Lookup(key); ok {
		return Match{Path: cached, Source: cached, Pool: FuzzyName, Tier: TierCache}, true, nil
	}

	best, score, ok, err := p.search(key)
	if err != nil || !ok {
		return Match{}, false, err
	}
	p.logger.Debug("search match accepted",
		logging.Subject(key.Entity, key.Form),
		logging.String("candidate", best.name),
		logging.Float64("score", score),
	)
	return p.convert(ctx, key, Match{Source: best.path, Pool: FuzzyName, Tier: TierSearch, Score: score})
}

func (p *FuzzyPool) convert(ctx context.Context, key Key, match Match) (Match, bool, error) {
	destination := p.cache.Path(key)
	match.Path = destination
	if _, ok := p.cache.Lookup(key); ok {
		return match, true, nil
	}
	if err := p.transcoder.Transcode(ctx, match.Source, destination); err != nil {
		return Match{}, false, err
	}
	p.logger.Info("converted pool asset",
		logging.Subject(key.Entity, key.Form),
		logging.String("source", filepath.Base(match.Source)),
		logging.String("destination", destination),
	)
	return match, true, nil
}

func (p *FuzzyPool) search(key Key) (candidate, float64, bool, error) {
	if err := p.load(); err != nil {
		return candidate{}, 0, false, err
	}

	target := key.String()
	var (
		best      candidate
		bestScore float64
		bestDist  = -1
		found     bool
	)
	for _, c := range p.candidates {
		score := p.score(c.name, target)
		if !found || score > bestScore {
			best, bestScore, bestDist, found = c, score, -1, true
			continue
		}
		if score < bestScore {
			continue
		}
		if bestDist < 0 {
			bestDist = levenshtein.ComputeDistance(best.name, target)
		}
		dist := levenshtein.ComputeDistance(c.name, target)
		if dist < bestDist || (dist == bestDist && c.name < best.name) {
			best, bestDist = c, dist
		}
	}
	if !found || bestScore < p.threshold {
		return candidate{}, 0, false, nil
	}
	return best, bestScore, true, nil
}

func (p *FuzzyPool) load() error {
	p.once.Do(func() {
		entries, err := os.ReadDir(p.dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				p.indexErr = fmt.Errorf("%s pool directory %s does not exist", FuzzyName, p.dir)
				return
			}
			p.indexErr = fmt.Errorf("list %s pool: %w", FuzzyName, err)
			return
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".wav" {
				continue
			}
			path := filepath.Join(p.dir, entry.Name())
			name, ok, err := CandidateName(entry.Name())
			if err != nil {
				p.indexErr = &MalformedAssetNameError{Path: path}
				return
			}
			if !ok {
				continue
			}
			p.candidates = append(p.candidates, candidate{path: path, name: name})
		}
		slices.SortFunc(p.candidates, func(a, b candidate) int {
			return strings.Compare(a.path, b.path)
		})
		p.logger.Debug("fuzzy pool indexed", logging.Int("candidates", len(p.candidates)))
	})
	return p.indexErr
}

// CandidateName normalizes a pool file name for comparison against
// "<species>[-<form>]". The text after the first hyphen of the stem is
// lowercased; a parenthesized qualifier becomes a "-<qualifier>" suffix with
// the word "form" and all spaces removed. Files whose qualifier is purely
// numeric are not candidates and yield ok == false.
func CandidateName(fileName string) (string, bool, error) {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	_, rest, found := strings.Cut(stem, "-")
	if !found {
		return "", false, fmt.Errorf("no hyphen in %q", fileName)
	}
	rest = strings.ToLower(rest)

	bracket := strings.IndexByte(rest, '(')
	if bracket < 0 {
		return textutil.CompactName(rest), true, nil
	}

	namePart := textutil.CompactName(rest[:bracket])
	qualifier := strings.Trim(strings.TrimSpace(rest[bracket:]), "()")
	qualifier = textutil.CompactName(strings.ReplaceAll(qualifier, "form", ""))
	if textutil.IsNumeric(qualifier) {
		return "", false, nil
	}
	return namePart + "-" + qualifier, true, nil
}
