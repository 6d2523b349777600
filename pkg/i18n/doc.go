// Package i18n resolves localized field values and URLs of MyDataShare API
// objects.
//
// Two pool shapes exist, one per API generation:
//
//   - Pool, the legacy "translations" collection keyed
//     language → translation_id → field → translation record. Objects link to
//     it through their translation_id.
//   - MetadataPool, the unified "metadatas" collection keyed by metadata uuid.
//     Objects link to it through their "metadatas.uuid" list; records with
//     type "translation" carry the language in subtype1 and the translated
//     fields in json_data.
//
// Translate runs the same four checks for both: pool present, object linked,
// language present, field present. A failed check falls back to the object's
// own field value, or returns a *NotFoundError when WithNotFoundError is
// given. The Result reports which language the returned value is written in.
//
//	res, err := i18n.Translate(item, "name", "fin", pool)
//	fmt.Println(res.String(), res.Language)
//
// URLs and MetadataURLs perform the equivalent lookup for URL records, and
// MergePools / MergeRawPools fold an incrementally fetched translation pool
// into an existing one without dropping sibling languages.
//
// Language codes are alpha-3 (ISO 639-2). Alpha3, Alpha2 and Negotiate
// convert from the tags found in HTTP headers and user settings.
package i18n
