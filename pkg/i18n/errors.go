package i18n

import "errors"

var (
	ErrTranslationNotFound = errors.New("i18n: translation not found")
	ErrURLNotFound         = errors.New("i18n: url not found")

	// ErrLinkingFieldMissing is returned when an object handed to a metadata
	// based URL lookup has no "metadatas.uuid" list. It signals a caller bug
	// and is returned whether or not not-found errors were requested.
	ErrLinkingFieldMissing = errors.New("i18n: object lacks the metadatas.uuid linking field")

	ErrInvalidLanguage = errors.New("i18n: invalid language code")
)

// Reason tells which lookup step failed.
type Reason string

const (
	ReasonPoolMissing     Reason = "pool_missing"
	ReasonLinkMissing     Reason = "link_missing"
	ReasonLanguageMissing Reason = "language_missing"
	ReasonFieldMissing    Reason = "field_missing"
	ReasonGroupMissing    Reason = "group_missing"
	ReasonTypeMissing     Reason = "type_missing"
)

// NotFoundError is returned by the resolvers when WithNotFoundError is set
// and a lookup cannot be satisfied. It matches ErrTranslationNotFound or
// ErrURLNotFound with errors.Is.
type NotFoundError struct {
	Reason  Reason
	Message string
	kind    error
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return e.kind
}

func translationNotFound(reason Reason, msg string) *NotFoundError {
	return &NotFoundError{Reason: reason, Message: msg, kind: ErrTranslationNotFound}
}

func urlNotFound(reason Reason, msg string) *NotFoundError {
	return &NotFoundError{Reason: reason, Message: msg, kind: ErrURLNotFound}
}
