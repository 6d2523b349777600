package store

import (
	"strings"
	"unicode"
)

// Capability is a lookup a record supports.
type Capability uint8

const (
	// Translatable records resolve localized field values.
	Translatable Capability = 1 << iota
	// URLCapable records resolve their URLs by type.
	URLCapable
)

// Kind describes a resource type of the API.
type Kind struct {
	// Name is the camel case resource name, e.g. "authItem".
	Name         string
	Capabilities Capability
}

var (
	KindAuthItem    = Kind{Name: "authItem", Capabilities: Translatable | URLCapable}
	KindIDProvider  = Kind{Name: "idProvider", Capabilities: Translatable | URLCapable}
	KindMetadata    = Kind{Name: "metadata", Capabilities: Translatable | URLCapable}
	KindTranslation = Kind{Name: "translation"}
	KindURL         = Kind{Name: "url", Capabilities: Translatable}
)

// Key returns the top-level response key holding the kind's collection:
// the snake cased, pluralized name ("authItem" → "auth_items").
func (k Kind) Key() string {
	var b strings.Builder
	for i, r := range k.Name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	b.WriteByte('s')
	return b.String()
}

// Has reports whether k supports c.
func (k Kind) Has(c Capability) bool {
	return k.Capabilities&c == c
}

func (k Kind) String() string {
	return k.Name
}
