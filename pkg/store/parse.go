package store

import (
	"context"
	"maps"
	"slices"

	"github.com/mydatashare/mdscore/pkg/i18n"
	"github.com/mydatashare/mdscore/pkg/jsonmap"
	"github.com/mydatashare/mdscore/pkg/logger"
	"github.com/mydatashare/mdscore/pkg/oidc"
)

// URL type of discovery document URLs.
const URLTypeOpenIDConfiguration = "openid_configuration"

// collection returns the objects of the collection under key. The API sends
// collections as objects keyed by uuid; lists are accepted as well. Entries
// that are not objects are skipped.
func collection(resp jsonmap.Map, key string) []jsonmap.Map {
	var out []jsonmap.Map
	switch v := resp[key].(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			if obj, ok := jsonmap.Object(v[k]); ok {
				out = append(out, obj)
			}
		}
	case []any:
		for _, item := range v {
			if obj, ok := jsonmap.Object(item); ok {
				out = append(out, obj)
			}
		}
	}
	return out
}

// ParseRecords parses the collection of kind found in resp. A missing or
// empty collection yields an empty map.
func ParseRecords(kind Kind, resp jsonmap.Map, s *Store) map[string]*Record {
	out := make(map[string]*Record)
	for _, obj := range collection(resp, kind.Key()) {
		rec := NewRecord(kind, obj, s)
		if rec.UUID() == "" {
			continue
		}
		out[rec.UUID()] = rec
	}
	return out
}

// ParseAuthItems joins auth_items with their id_providers and the URL that
// locates each provider's discovery document. AuthItems of a provider without
// a discovery URL are left out. All AuthItems of one provider share a single
// oidc.Discovery, which is started right away when background discovery is on.
func ParseAuthItems(ctx context.Context, resp jsonmap.Map, s *Store) map[string]*AuthItem {
	out := make(map[string]*AuthItem)

	idps := collection(resp, KindIDProvider.Key())
	items := collection(resp, KindAuthItem.Key())
	if len(idps) == 0 || len(items) == 0 {
		return out
	}

	var lookup func(idp jsonmap.Map) string
	switch s.generation {
	case GenerationLegacy:
		urls, ok := jsonmap.Object(resp[KindURL.Key()])
		if !ok || len(urls) == 0 {
			return out
		}
		lookup = func(idp jsonmap.Map) string { return legacyDiscoveryURL(idp, urls) }
	default:
		metadatas := collection(resp, KindMetadata.Key())
		if len(metadatas) == 0 {
			return out
		}
		lookup = func(idp jsonmap.Map) string { return metadataDiscoveryURL(idp, metadatas) }
	}

	for _, idp := range idps {
		idpUUID, ok := jsonmap.Key(idp[FieldUUID])
		if !ok {
			continue
		}

		var own []jsonmap.Map
		for _, item := range items {
			if id, ok := jsonmap.Key(item[FieldIDProviderUUID]); ok && id == idpUUID {
				own = append(own, item)
			}
		}
		if len(own) == 0 {
			continue
		}

		discoveryURL := lookup(idp)
		if discoveryURL == "" {
			s.logger.DebugContext(ctx, "skipping auth items of id provider without discovery url",
				logger.UUID(idpUUID), logger.Count(len(own)))
			continue
		}

		disc := oidc.NewDiscovery(discoveryURL, s.discoverer)
		if s.backgroundDiscovery {
			disc.Start(ctx)
		}

		for _, item := range own {
			rec := NewRecord(KindAuthItem, item, s)
			if rec.UUID() == "" {
				continue
			}
			out[rec.UUID()] = NewAuthItem(rec, disc)
		}
	}

	return out
}

// metadataDiscoveryURL finds the url metadata of subtype openid_configuration
// owned by idp.
func metadataDiscoveryURL(idp jsonmap.Map, metadatas []jsonmap.Map) string {
	idpUUID, _ := jsonmap.Key(idp[FieldUUID])
	for _, m := range metadatas {
		owner, _ := jsonmap.Key(m[i18n.FieldModelUUID])
		if owner != idpUUID ||
			jsonmap.String(m, i18n.FieldType) != i18n.TypeURL ||
			jsonmap.String(m, i18n.FieldSubtype1) != URLTypeOpenIDConfiguration {
			continue
		}
		if u := i18n.URLValue(i18n.Fields(m)); u != "" {
			return u
		}
	}
	return ""
}

// legacyDiscoveryURL finds the openid_configuration url in idp's url group.
func legacyDiscoveryURL(idp jsonmap.Map, urls jsonmap.Map) string {
	group, ok := jsonmap.Key(idp[i18n.FieldURLGroupID])
	if !ok {
		return ""
	}
	list, _ := urls[group].([]any)
	for _, item := range list {
		obj, ok := jsonmap.Object(item)
		if !ok {
			continue
		}
		if jsonmap.String(obj, i18n.FieldURLType) == URLTypeOpenIDConfiguration {
			if u := jsonmap.String(obj, i18n.FieldURL); u != "" {
				return u
			}
		}
	}
	return ""
}

// ParseTranslations reshapes the legacy translations collection
// (language → translation_id → field → translation) into a pool of records.
func ParseTranslations(resp jsonmap.Map, s *Store) i18n.Pool {
	out := make(i18n.Pool)
	langs, ok := jsonmap.Object(resp[KindTranslation.Key()])
	if !ok {
		return out
	}

	for lang, rawGroups := range langs {
		groups, ok := jsonmap.Object(rawGroups)
		if !ok {
			continue
		}
		byID := make(map[string]map[string]i18n.Object, len(groups))
		for id, rawFields := range groups {
			fields, ok := jsonmap.Object(rawFields)
			if !ok {
				continue
			}
			recs := make(map[string]i18n.Object, len(fields))
			for field, rawTranslation := range fields {
				if t, ok := jsonmap.Object(rawTranslation); ok {
					recs[field] = NewRecord(KindTranslation, t, s)
				}
			}
			byID[id] = recs
		}
		out[lang] = byID
	}
	return out
}

// ParseURLs reshapes the legacy urls collection (url_group_id → list) into
// URL records.
func ParseURLs(resp jsonmap.Map, s *Store) i18n.URLPool {
	out := make(i18n.URLPool)
	groups, ok := jsonmap.Object(resp[KindURL.Key()])
	if !ok {
		return out
	}

	for id, rawList := range groups {
		list, ok := rawList.([]any)
		if !ok {
			continue
		}
		recs := make([]i18n.Object, 0, len(list))
		for _, item := range list {
			if obj, ok := jsonmap.Object(item); ok {
				recs = append(recs, NewRecord(KindURL, obj, s))
			}
		}
		out[id] = recs
	}
	return out
}
