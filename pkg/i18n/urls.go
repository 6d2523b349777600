package i18n

import (
	"fmt"

	"github.com/mydatashare/mdscore/pkg/jsonmap"
)

// URLs returns the records of obj's URL group whose url_type equals urlType.
// Without WithNotFoundError a failed lookup yields an empty list.
func URLs(obj Object, urlType string, pool URLPool, opts ...Option) ([]Object, error) {
	o := applyOptions(opts)
	fail := func(nf *NotFoundError) ([]Object, error) {
		if o.notFoundError {
			return nil, nf
		}
		return []Object{}, nil
	}

	if pool == nil {
		return fail(urlNotFound(ReasonPoolMissing, "Did not receive urls"))
	}

	raw, _ := obj.Field(FieldURLGroupID)
	groupID, ok := jsonmap.Key(raw)
	if !ok {
		return fail(urlNotFound(ReasonLinkMissing, "Given object does not have url_group_id property."))
	}

	group, ok := pool[groupID]
	if !ok {
		return fail(urlNotFound(ReasonGroupMissing, fmt.Sprintf("No urls exist for url_group_id %s", groupID)))
	}

	out := make([]Object, 0, len(group))
	for _, rec := range group {
		if rec != nil && stringField(rec, FieldURLType) == urlType {
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		return fail(urlNotFound(ReasonTypeMissing,
			fmt.Sprintf("No urls with url_type %q exist in group %s", urlType, groupID)))
	}
	return out, nil
}

// MetadataURLs returns the url metadata records linked to obj whose subtype1
// equals urlType, in the order of obj's "metadatas.uuid" list.
// An object without that list is a caller error and always yields ErrLinkingFieldMissing.
func MetadataURLs(obj Object, urlType string, pool MetadataPool, opts ...Option) ([]Object, error) {
	links, ok := metadataLinks(obj)
	if !ok {
		return nil, ErrLinkingFieldMissing
	}

	o := applyOptions(opts)
	fail := func(nf *NotFoundError) ([]Object, error) {
		if o.notFoundError {
			return nil, nf
		}
		return []Object{}, nil
	}

	if pool == nil {
		return fail(urlNotFound(ReasonPoolMissing, "Did not receive metadatas"))
	}

	out := pool.filter(links, TypeURL, urlType)
	if len(out) == 0 {
		return fail(urlNotFound(ReasonTypeMissing, fmt.Sprintf("No urls with url_type %q exist for object", urlType)))
	}
	return out, nil
}

// URLValue returns the address held by a URL record of either generation:
// json_data.url for metadata records, url for legacy records.
func URLValue(rec Object) string {
	if rec == nil {
		return ""
	}
	if s, ok := jsonData(rec)[FieldURL].(string); ok {
		return s
	}
	return stringField(rec, FieldURL)
}
