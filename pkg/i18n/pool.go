package i18n

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mydatashare/mdscore/pkg/jsonmap"
)

// Source is a pool of translations a field value can be resolved from.
// It is implemented by Pool (the "translations" generation) and by
// MetadataPool (the unified "metadatas" generation).
type Source interface {
	lookup(obj Object, field, language string) (any, *NotFoundError)
}

// Pool is the legacy translation pool: language → translation_id → field → translation record.
type Pool map[string]map[string]map[string]Object

func (p Pool) lookup(obj Object, field, language string) (any, *NotFoundError) {
	if p == nil {
		return nil, translationNotFound(ReasonPoolMissing, "Did not receive translations")
	}

	raw, ok := obj.Field(FieldTranslationID)
	id, isKey := jsonmap.Key(raw)
	if !ok || !isKey {
		return nil, translationNotFound(ReasonLinkMissing, "Given object does not have translation_id property.")
	}

	byID, ok := p[language]
	if !ok {
		return nil, translationNotFound(ReasonLanguageMissing,
			fmt.Sprintf("No translations exist for language %s", language))
	}

	fields, ok := byID[id]
	if !ok {
		return nil, translationNotFound(ReasonLanguageMissing,
			fmt.Sprintf("No translations with translation_id %s exist for language %s.", id, language))
	}

	rec, ok := fields[field]
	if !ok || rec == nil {
		return nil, translationNotFound(ReasonFieldMissing,
			fmt.Sprintf("No translations for field %s with translation_id %s exist for language %s.", field, id, language))
	}

	v, _ := rec.Field(FieldTranslation)
	return v, nil
}

// MetadataPool is the unified pool keyed by metadata uuid. Records are
// polymorphic by their "type" field.
type MetadataPool map[string]Object

func (p MetadataPool) lookup(obj Object, field, language string) (any, *NotFoundError) {
	if p == nil {
		return nil, translationNotFound(ReasonPoolMissing, "Did not receive metadatas")
	}

	links, ok := metadataLinks(obj)
	if !ok {
		return nil, translationNotFound(ReasonLinkMissing, "Given object does not have metadata.")
	}

	entry := p.find(links, TypeTranslation, language)
	if entry == nil {
		return nil, translationNotFound(ReasonLanguageMissing,
			fmt.Sprintf("No translations exist for language %s.", language))
	}

	v, ok := jsonData(entry)[field]
	if !ok {
		return nil, translationNotFound(ReasonFieldMissing,
			fmt.Sprintf("No translations for field %s exist for language %s.", field, language))
	}
	return v, nil
}

// find returns the first linked record of the given type and subtype1.
func (p MetadataPool) find(links []string, typ, subtype1 string) Object {
	for _, id := range links {
		rec, ok := p[id]
		if !ok || rec == nil {
			continue
		}
		if stringField(rec, FieldType) == typ && stringField(rec, FieldSubtype1) == subtype1 {
			return rec
		}
	}
	return nil
}

// filter returns every linked record of the given type and subtype1, in link order.
func (p MetadataPool) filter(links []string, typ, subtype1 string) []Object {
	out := make([]Object, 0)
	for _, id := range links {
		rec, ok := p[id]
		if !ok || rec == nil {
			continue
		}
		if stringField(rec, FieldType) == typ && stringField(rec, FieldSubtype1) == subtype1 {
			out = append(out, rec)
		}
	}
	return out
}

// Languages returns the sorted languages with translations linked to obj.
func (p MetadataPool) Languages(obj Object) []string {
	links, ok := metadataLinks(obj)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	for _, id := range links {
		if rec, ok := p[id]; ok && rec != nil && stringField(rec, FieldType) == TypeTranslation {
			seen[stringField(rec, FieldSubtype1)] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func metadataLinks(obj Object) ([]string, bool) {
	v, ok := obj.Field(FieldMetadataUUIDs)
	if !ok {
		return nil, false
	}
	return jsonmap.Strings(v)
}

// URLPool is the legacy URL pool: url_group_id → URL records.
type URLPool map[string][]Object

// MergePools returns a new pool holding the languages of both pools.
// For a language present in both, the translation id maps are merged and,
// for a shared translation id, entries of next replace those of prev field by field.
// Neither argument is modified.
func MergePools(prev, next Pool) Pool {
	out := make(Pool, len(prev)+len(next))
	for lang, byID := range prev {
		out[lang] = cloneByID(byID)
	}

	for lang, byID := range next {
		dst, ok := out[lang]
		if !ok {
			out[lang] = cloneByID(byID)
			continue
		}
		for id, fields := range byID {
			cur, ok := dst[id]
			if !ok || cur == nil {
				dst[id] = maps.Clone(fields)
				continue
			}
			maps.Copy(cur, fields)
		}
	}

	return out
}

func cloneByID(byID map[string]map[string]Object) map[string]map[string]Object {
	out := make(map[string]map[string]Object, len(byID))
	for id, fields := range byID {
		out[id] = maps.Clone(fields)
	}
	return out
}

// MergeRawPools is MergePools for pools still in decoded JSON form, as found
// under the "translations" key of API responses. Values that are not objects
// at the language or translation id level are replaced by next's value.
func MergeRawPools(prev, next map[string]any) map[string]any {
	out := jsonmap.CloneMap(prev)
	if out == nil {
		out = make(map[string]any, len(next))
	}
	mergeRawLevel(out, next, 2)
	return out
}

// mergeRawLevel merges src into dst, descending depth more object levels before
// assigning values.
func mergeRawLevel(dst, src map[string]any, depth int) {
	for k, v := range src {
		if depth > 0 {
			srcChild, srcOK := v.(map[string]any)
			dstChild, dstOK := dst[k].(map[string]any)
			if srcOK && dstOK {
				mergeRawLevel(dstChild, srcChild, depth-1)
				continue
			}
		}
		dst[k] = jsonmap.Clone(v)
	}
}
