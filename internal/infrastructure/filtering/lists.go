package filtering

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/bnema/medusa/internal/logging"
)

//go:embed lists/*.txt
var builtinLists embed.FS

// Lists holds the per-session block lists.
type Lists struct {
	Ads      *Blocklist
	Trackers *Blocklist
}

// Get returns the list for kind, or nil for an unknown kind.
func (l *Lists) Get(kind ListKind) *Blocklist {
	switch kind {
	case ListAds:
		return l.Ads
	case ListTrackers:
		return l.Trackers
	default:
		return nil
	}
}

// LoadBuiltin parses one of the embedded lists.
func LoadBuiltin(kind ListKind) (*Blocklist, error) {
	data, err := builtinLists.ReadFile("lists/" + string(kind) + ".txt")
	if err != nil {
		return nil, fmt.Errorf("builtin list %s: %w", kind, err)
	}
	rules, stats, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("builtin list %s: %w", kind, err)
	}
	return NewBlocklist(rules, stats), nil
}

// LoadFile parses a block list from disk.
func LoadFile(path string) (*Blocklist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rules, stats, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewBlocklist(rules, stats), nil
}

// LoadLists builds the session lists from the embedded defaults plus extra
// user list files, which are merged into the ad list. An unreadable extra
// list is logged and skipped.
func LoadLists(ctx context.Context, extraPaths []string) (*Lists, error) {
	log := logging.FromContext(ctx)

	ads, err := LoadBuiltin(ListAds)
	if err != nil {
		return nil, err
	}
	trackers, err := LoadBuiltin(ListTrackers)
	if err != nil {
		return nil, err
	}

	var extras []*Blocklist
	for _, path := range extraPaths {
		if path == "" {
			continue
		}
		list, err := LoadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable block list")
			continue
		}
		log.Debug().Str("path", path).Int("domains", list.Len()).Msg("loaded extra block list")
		extras = append(extras, list)
	}
	if len(extras) > 0 {
		ads = ads.Merge(extras...)
	}

	log.Debug().
		Int("ads", ads.Len()).
		Int("trackers", trackers.Len()).
		Msg("block lists ready")

	return &Lists{Ads: ads, Trackers: trackers}, nil
}
