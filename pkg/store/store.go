package store

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/mydatashare/mdscore/pkg/i18n"
	"github.com/mydatashare/mdscore/pkg/jsonmap"
	"github.com/mydatashare/mdscore/pkg/logger"
	"github.com/mydatashare/mdscore/pkg/oidc"
	"github.com/mydatashare/mdscore/pkg/pagination"
)

// Store holds every record parsed from API responses and the active language.
//
// Collections are replaced, never modified in place, when a response is
// merged, so maps handed out by accessors stay consistent. Merges of
// concurrent ParseAPIResponse calls are serialized, and the later merge
// wins on key collisions.
type Store struct {
	generation          Generation
	discoverer          oidc.Discoverer
	backgroundDiscovery bool
	logger              *slog.Logger

	mu           sync.RWMutex
	language     string
	authItems    map[string]*AuthItem
	idProviders  map[string]*Record
	metadatas    map[string]*Record
	metaPool     i18n.MetadataPool
	translations i18n.Pool
	urls         i18n.URLPool
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		generation:          GenerationMetadata,
		backgroundDiscovery: true,
		logger:              logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("store"))
	s.reset()
	return s
}

func (s *Store) reset() {
	s.authItems = map[string]*AuthItem{}
	s.idProviders = map[string]*Record{}
	s.metadatas = map[string]*Record{}
	s.metaPool = i18n.MetadataPool{}
	s.translations = i18n.Pool{}
	s.urls = i18n.URLPool{}
}

// Generation returns the schema generation the store reads.
func (s *Store) Generation() Generation {
	return s.generation
}

// ParseAPIResponse parses a response and merges its records into the store.
//
// response may be a single decoded page (jsonmap.Map), a list of pages
// ([]jsonmap.Map or []any) which are combined first, or raw JSON bytes of
// either. The input is copied and never retained. Object collections merge by
// uuid with new records replacing old ones; the legacy translation pool is
// merged so that languages missing from the response survive.
func (s *Store) ParseAPIResponse(ctx context.Context, response any) error {
	resp, err := normalize(response)
	if err != nil {
		return err
	}

	var (
		metadatas    map[string]*Record
		translations i18n.Pool
		urls         i18n.URLPool
		authItems    map[string]*AuthItem
		idProviders  map[string]*Record
	)

	switch s.generation {
	case GenerationLegacy:
		if _, ok := resp[KindTranslation.Key()]; ok {
			translations = ParseTranslations(resp, s)
		}
		if _, ok := resp[KindURL.Key()]; ok {
			urls = ParseURLs(resp, s)
		}
	default:
		if _, ok := resp[KindMetadata.Key()]; ok {
			metadatas = ParseRecords(KindMetadata, resp, s)
		}
	}
	if _, ok := resp[KindAuthItem.Key()]; ok {
		authItems = ParseAuthItems(ctx, resp, s)
	}
	if _, ok := resp[KindIDProvider.Key()]; ok {
		idProviders = ParseRecords(KindIDProvider, resp, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if metadatas != nil {
		s.metadatas = merged(s.metadatas, metadatas)
		pool := make(i18n.MetadataPool, len(s.metadatas))
		for k, rec := range s.metadatas {
			pool[k] = rec
		}
		s.metaPool = pool
	}
	if translations != nil {
		s.translations = i18n.MergePools(s.translations, translations)
	}
	if urls != nil {
		s.urls = merged(s.urls, urls)
	}
	if authItems != nil {
		s.authItems = merged(s.authItems, authItems)
	}
	if idProviders != nil {
		s.idProviders = merged(s.idProviders, idProviders)
	}

	s.logger.DebugContext(ctx, "api response parsed",
		slog.String("generation", s.generation.String()),
		slog.Int("auth_items", len(authItems)),
		slog.Int("id_providers", len(idProviders)),
		slog.Int("metadatas", len(metadatas)),
		slog.Int("translation_languages", len(translations)),
		slog.Int("url_groups", len(urls)),
	)
	return nil
}

func merged[V any](prev, next map[string]V) map[string]V {
	out := make(map[string]V, len(prev)+len(next))
	maps.Copy(out, prev)
	maps.Copy(out, next)
	return out
}

// normalize turns the accepted response shapes into one private page.
func normalize(response any) (jsonmap.Map, error) {
	switch v := response.(type) {
	case map[string]any:
		out := jsonmap.CloneMap(v)
		if out == nil {
			out = jsonmap.Map{}
		}
		return out, nil
	case []map[string]any:
		return pagination.Combine(v)
	case []any:
		pages := make([]jsonmap.Map, 0, len(v))
		for i, item := range v {
			page, ok := jsonmap.Object(item)
			if !ok {
				return nil, fmt.Errorf("%w: page %d is not an object", ErrInvalidResponse, i)
			}
			pages = append(pages, page)
		}
		return pagination.Combine(pages)
	case json.RawMessage:
		return normalizeJSON(v)
	case []byte:
		return normalizeJSON(v)
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrInvalidResponse)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidResponse, response)
	}
}

func normalizeJSON(data []byte) (jsonmap.Map, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	switch decoded.(type) {
	case map[string]any, []any:
		return normalize(decoded)
	default:
		return nil, fmt.Errorf("%w: json %T", ErrInvalidResponse, decoded)
	}
}

// SetLanguage sets the language Record.Translate resolves to.
// Languages are alpha-3 codes such as "fin"; see i18n.Alpha3.
func (s *Store) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
}

// Language returns the language Record.Translate resolves to.
func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// Clear drops every record. The language is kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// AuthItems returns a snapshot of the AuthItems keyed by uuid.
func (s *Store) AuthItems() map[string]*AuthItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.authItems)
}

// AuthItemList returns the AuthItems ordered by uuid.
func (s *Store) AuthItemList() []*AuthItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.SortedFunc(maps.Values(s.authItems), func(a, b *AuthItem) int {
		return cmp.Compare(a.UUID(), b.UUID())
	})
}

// AuthItem looks an AuthItem up by uuid.
func (s *Store) AuthItem(uuid string) (*AuthItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.authItems[uuid]
	return a, ok
}

// IDProviders returns a snapshot of the identity providers keyed by uuid.
func (s *Store) IDProviders() map[string]*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.idProviders)
}

// IDProvider looks an identity provider up by uuid.
func (s *Store) IDProvider(uuid string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.idProviders[uuid]
	return r, ok
}

// Metadatas returns a snapshot of the metadata records keyed by uuid.
func (s *Store) Metadatas() map[string]*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.metadatas)
}

// Metadata looks a metadata record up by uuid.
func (s *Store) Metadata(uuid string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.metadatas[uuid]
	return r, ok
}

// Translations returns the legacy translation pool.
func (s *Store) Translations() i18n.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.translations
}

// URLGroups returns the legacy URL pool.
func (s *Store) URLGroups() i18n.URLPool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.urls
}

// Translate resolves field of any object against the store's pool in the
// current language.
func (s *Store) Translate(obj i18n.Object, field string, opts ...i18n.Option) (i18n.Result, error) {
	return i18n.Translate(obj, field, s.Language(), s.source(), opts...)
}

// TranslateAll translates fields of every object in the current language.
func (s *Store) TranslateAll(fields []string, objects []i18n.Fields, opts ...i18n.Option) ([]i18n.Fields, error) {
	return i18n.TranslateAll(s.Language(), fields, objects, s.source(), opts...)
}

func (s *Store) source() i18n.Source {
	if s.generation == GenerationLegacy {
		return s.translationPool()
	}
	return s.metadataPool()
}

func (s *Store) metadataPool() i18n.MetadataPool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metaPool
}

func (s *Store) translationPool() i18n.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.translations
}

func (s *Store) urlPool() i18n.URLPool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.urls
}
