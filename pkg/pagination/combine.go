package pagination

import (
	"maps"

	"github.com/mydatashare/mdscore/pkg/i18n"
	"github.com/mydatashare/mdscore/pkg/jsonmap"
)

// KeyTranslations is the top-level key of the legacy translation pool.
const KeyTranslations = "translations"

// Combine merges pages into a single response. The first page is deep
// copied and every later page is folded into it in order: object values are
// merged key by key, anything else on later pages is ignored. The pages
// themselves are never modified.
func Combine(pages []jsonmap.Map) (jsonmap.Map, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyInput
	}

	combined := jsonmap.CloneMap(pages[0])
	if combined == nil {
		combined = jsonmap.Map{}
	}

	for _, page := range pages[1:] {
		for key, value := range page {
			resources, ok := jsonmap.Object(value)
			if !ok {
				continue
			}

			current, exists := combined[key]
			acc, ok := jsonmap.Object(current)
			if !ok {
				// A non-object from an earlier page is kept as is.
				if exists {
					continue
				}
				acc = jsonmap.Map{}
			}

			if key == KeyTranslations {
				combined[key] = i18n.MergeRawPools(acc, resources)
				continue
			}

			maps.Copy(acc, jsonmap.CloneMap(resources))
			combined[key] = acc
		}
	}

	return combined, nil
}
