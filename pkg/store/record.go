package store

import (
	"fmt"

	"github.com/mydatashare/mdscore/pkg/i18n"
	"github.com/mydatashare/mdscore/pkg/jsonmap"
)

// FieldUUID is the identifier every resource carries.
const FieldUUID = "uuid"

// Record is one parsed API object. Its fields are a private copy of the
// response data and never change after parsing; a later parse replaces the
// record in the store instead.
type Record struct {
	kind   Kind
	key    string
	fields i18n.Fields
	store  *Store
}

var _ i18n.Object = (*Record)(nil)

// NewRecord builds a record holding a deep copy of fields.
func NewRecord(kind Kind, fields map[string]any, s *Store) *Record {
	r := &Record{
		kind:   kind,
		fields: i18n.Fields(jsonmap.CloneMap(fields)),
		store:  s,
	}
	if r.fields == nil {
		r.fields = i18n.Fields{}
	}
	r.key, _ = jsonmap.Key(r.fields[FieldUUID])
	return r
}

// Kind returns the resource kind the record was parsed as.
func (r *Record) Kind() Kind {
	return r.kind
}

// UUID returns the record's uuid, or "" for records without one.
func (r *Record) UUID() string {
	return r.key
}

// Store returns the store the record was parsed into.
func (r *Record) Store() *Store {
	return r.store
}

// Field implements i18n.Object.
func (r *Record) Field(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// String returns a field formatted as a string, "" when absent or null.
func (r *Record) String(name string) string {
	switch v := r.fields[name].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		if k, ok := jsonmap.Key(v); ok {
			return k
		}
		return fmt.Sprint(v)
	}
}

// Fields returns a deep copy of the record's fields.
func (r *Record) Fields() i18n.Fields {
	return i18n.Fields(jsonmap.CloneMap(r.fields))
}

// Has reports whether the record's kind supports c.
func (r *Record) Has(c Capability) bool {
	return r.kind.Has(c)
}

// Translate resolves field in the store's current language.
func (r *Record) Translate(field string, opts ...i18n.Option) (i18n.Result, error) {
	if r.store == nil {
		return i18n.Result{}, ErrDetached
	}
	return r.TranslateIn(field, r.store.Language(), opts...)
}

// TranslateIn resolves field in language.
func (r *Record) TranslateIn(field, language string, opts ...i18n.Option) (i18n.Result, error) {
	if !r.Has(Translatable) {
		return i18n.Result{}, fmt.Errorf("%w: %s", ErrNotTranslatable, r.kind)
	}
	if r.store == nil {
		return i18n.Result{}, ErrDetached
	}
	return i18n.Translate(r, field, language, r.store.source(), opts...)
}

// Text is Translate returning the value as a string, falling back to the
// untranslated field on any error.
func (r *Record) Text(field string) string {
	res, err := r.Translate(field)
	if err != nil {
		return r.String(field)
	}
	return res.String()
}

// URLs returns the record's URL records of urlType. A type the record has no
// URLs for is reported as an *i18n.NotFoundError.
func (r *Record) URLs(urlType string) ([]i18n.Object, error) {
	if !r.Has(URLCapable) {
		return nil, fmt.Errorf("%w: %s", ErrNoURLs, r.kind)
	}
	if r.store == nil {
		return nil, ErrDetached
	}

	if r.store.generation == GenerationLegacy {
		return i18n.URLs(r, urlType, r.store.urlPool(), i18n.WithNotFoundError())
	}
	return i18n.MetadataURLs(r, urlType, r.store.metadataPool(), i18n.WithNotFoundError())
}

// URL returns the address of the first URL of urlType, or "".
func (r *Record) URL(urlType string) string {
	urls, err := r.URLs(urlType)
	if err != nil || len(urls) == 0 {
		return ""
	}
	return i18n.URLValue(urls[0])
}
