package i18n

// Field names and metadata types the resolvers understand.
const (
	FieldTranslationID   = "translation_id"
	FieldTranslation     = "translation"
	FieldMetadataUUIDs   = "metadatas.uuid"
	FieldDefaultLanguage = "default_language"
	FieldURLGroupID      = "url_group_id"
	FieldURLType         = "url_type"
	FieldURL             = "url"
	FieldType            = "type"
	FieldSubtype1        = "subtype1"
	FieldJSONData        = "json_data"
	FieldModelUUID       = "model_uuid"

	TypeTranslation = "translation"
	TypeURL         = "url"
)

// Object is an API object whose raw fields can be read by name.
type Object interface {
	Field(name string) (any, bool)
}

// Fields is a plain decoded API object.
type Fields map[string]any

// Field implements Object.
func (f Fields) Field(name string) (any, bool) {
	v, ok := f[name]
	return v, ok
}

func stringField(obj Object, name string) string {
	v, _ := obj.Field(name)
	s, _ := v.(string)
	return s
}

func jsonData(obj Object) map[string]any {
	v, _ := obj.Field(FieldJSONData)
	m, _ := v.(map[string]any)
	return m
}
