package store

import (
	"log/slog"

	"github.com/mydatashare/mdscore/pkg/oidc"
)

// Generation selects which of the two API schema generations a store reads.
type Generation int

const (
	// GenerationMetadata reads the unified "metadatas" collection.
	GenerationMetadata Generation = iota
	// GenerationLegacy reads the separate "translations" and "urls" collections.
	GenerationLegacy
)

func (g Generation) String() string {
	if g == GenerationLegacy {
		return "legacy"
	}
	return "metadata"
}

// Option configures a Store.
type Option func(*Store)

// WithGeneration sets the schema generation. The default is GenerationMetadata.
func WithGeneration(g Generation) Option {
	return func(s *Store) {
		s.generation = g
	}
}

// WithDiscoverer sets how discovery documents of identity providers are fetched.
// Without one, AuthItems can only use documents installed with oidc.Discovery.Set.
func WithDiscoverer(d oidc.Discoverer) Option {
	return func(s *Store) {
		s.discoverer = d
	}
}

// WithBackgroundDiscovery controls whether parsing AuthItems starts the
// discovery document fetch of their identity provider. Enabled by default.
func WithBackgroundDiscovery(enabled bool) Option {
	return func(s *Store) {
		s.backgroundDiscovery = enabled
	}
}

// WithLanguage sets the initial language.
func WithLanguage(lang string) Option {
	return func(s *Store) {
		s.language = lang
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
