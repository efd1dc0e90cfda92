package resolve

import (
	"context"
	"log/slog"

	"cryswap/internal/logging"
)

// Tier records which lookup tier produced a match.
type Tier string

const (
	TierOverride Tier = "override"
	TierCache    Tier = "cache"
	TierSearch   Tier = "search"
)

// Match is a resolved sound file.
type Match struct {
	// Path is the .ogg file to read.
	Path string
	// Pool is the name of the pool that produced the match.
	Pool string
	// Tier is the lookup tier that produced the match.
	Tier Tier
	// Source is the pool asset Path was produced from; equal to Path when no
	// conversion happened.
	Source string
	// Score is the similarity of a search match; zero for other tiers.
	Score float64
}

// Pool looks keys up in one asset directory.
type Pool interface {
	Name() string
	// Find returns the pool's asset for key. A false result with a nil error
	// means the pool has nothing for the key.
	Find(ctx context.Context, key Key) (Match, bool, error)
}

// Resolver tries pools in order and returns the first match.
type Resolver struct {
	pools  []Pool
	logger *slog.Logger
}

// NewResolver builds a resolver over pools in priority order.
func NewResolver(logger *slog.Logger, pools ...Pool) *Resolver {
	return &Resolver{
		pools:  append([]Pool(nil), pools...),
		logger: logging.NewComponentLogger(logger, "resolve"),
	}
}

// Resolve returns the sound for key or an *UnresolvedSoundError.
func (r *Resolver) Resolve(ctx context.Context, key Key) (Match, error) {
	for _, pool := range r.pools {
		if err := ctx.Err(); err != nil {
			return Match{}, err
		}
		match, ok, err := pool.Find(ctx, key)
		if err != nil {
			return Match{}, err
		}
		if !ok {
			continue
		}
		r.logger.Debug("sound resolved",
			logging.Subject(key.Entity, key.Form),
			logging.String(logging.FieldPool, match.Pool),
			logging.String("tier", string(match.Tier)),
			logging.String("path", match.Path),
		)
		return match, nil
	}
	return Match{}, &UnresolvedSoundError{Entity: key.Entity, Form: key.Form}
}
