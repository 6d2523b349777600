package i18n

import (
	"fmt"
	"maps"
)

// Result is the outcome of a translation lookup.
type Result struct {
	// Value is the translated value, or the object's own field value on fallback.
	Value any
	// Language is the language Value is written in: the requested language when
	// Found, otherwise the object's default_language. Empty when unknown.
	Language string
	// Found reports whether a translation was used.
	Found bool
}

// String returns Value formatted as a string. Nil values give "".
func (r Result) String() string {
	switch v := r.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Translate resolves the localized value of obj's field in language from src.
//
// The checks run in order: pool present, object linked to the pool, language
// present for the object, field present in that language. When a check fails
// Translate returns the object's own field value, or a *NotFoundError if
// WithNotFoundError is given.
func Translate(obj Object, field, language string, src Source, opts ...Option) (Result, error) {
	o := applyOptions(opts)

	var (
		val any
		nf  *NotFoundError
	)
	if src == nil {
		nf = translationNotFound(ReasonPoolMissing, "Did not receive translations")
	} else {
		val, nf = src.lookup(obj, field, language)
	}

	if nf == nil {
		return Result{Value: val, Language: language, Found: true}, nil
	}
	if o.notFoundError {
		return Result{}, nf
	}

	def, _ := obj.Field(field)
	return Result{Value: def, Language: stringField(obj, FieldDefaultLanguage)}, nil
}

// TranslateAll returns shallow copies of objects with every field in fields
// replaced by its translation in language, or by the default value when no
// translation exists. The input objects are never modified.
func TranslateAll(language string, fields []string, objects []Fields, src Source, opts ...Option) ([]Fields, error) {
	out := make([]Fields, 0, len(objects))
	for _, obj := range objects {
		item := maps.Clone(obj)
		if item == nil {
			item = Fields{}
		}
		for _, field := range fields {
			res, err := Translate(item, field, language, src, opts...)
			if err != nil {
				return nil, err
			}
			item[field] = res.Value
		}
		out = append(out, item)
	}
	return out, nil
}
