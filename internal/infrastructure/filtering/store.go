package filtering

import (
	"context"
	"fmt"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/bnema/medusa/internal/logging"
)

// Store wraps webkit.UserContentFilterStore. Callbacks run on the GTK main
// loop, so none of these methods may be waited on from the main thread.
type Store struct {
	inner *webkit.UserContentFilterStore
	path  string
}

// NewStore creates a Store keeping compiled bytecode under storagePath.
func NewStore(storagePath string) (*Store, error) {
	inner := webkit.NewUserContentFilterStore(storagePath)
	if inner == nil {
		return nil, fmt.Errorf("failed to create content filter store at %s", storagePath)
	}
	return &Store{inner: inner, path: storagePath}, nil
}

// Path returns the storage path for compiled filters.
func (s *Store) Path() string {
	return s.path
}

// Compile compiles content blocker JSON and stores it under identifier.
func (s *Store) Compile(ctx context.Context, identifier string, rules []byte, done func(*webkit.UserContentFilter, error)) {
	log := logging.FromContext(ctx).With().
		Str("component", "filter-store").
		Str("identifier", identifier).
		Logger()

	if len(rules) == 0 {
		done(nil, fmt.Errorf("empty filter rules for %s", identifier))
		return
	}

	log.Debug().Int("bytes", len(rules)).Msg("compiling content filter")

	s.inner.Save(ctx, identifier, glib.NewBytesWithGo(rules), func(result gio.AsyncResulter) {
		filter, err := s.inner.SaveFinish(result)
		if err == nil && filter == nil {
			err = fmt.Errorf("filter compilation returned nil")
		}
		if err != nil {
			log.Error().Err(err).Msg("content filter compilation failed")
			done(nil, fmt.Errorf("compile %s: %w", identifier, err))
			return
		}
		log.Debug().Msg("content filter compiled")
		done(filter, nil)
	})
}
