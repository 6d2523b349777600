package i18n

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the Accept-Language header we are willing to parse.
const maxAcceptLanguageLength = 4096

// Alpha3 converts a language code or tag ("fi", "fi-FI", "fin") to the
// ISO 639-2 alpha-3 code used by the MyDataShare API ("fin").
func Alpha3(code string) (string, error) {
	base, err := parseBase(code)
	if err != nil {
		return "", err
	}
	return base.ISO3(), nil
}

// Alpha2 converts a language code to its ISO 639-1 alpha-2 form when one
// exists ("fin" → "fi"). Languages without an alpha-2 code keep their alpha-3 code.
func Alpha2(code string) (string, error) {
	base, err := parseBase(code)
	if err != nil {
		return "", err
	}
	return base.String(), nil
}

func parseBase(code string) (language.Base, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return language.Base{}, fmt.Errorf("%w: empty", ErrInvalidLanguage)
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Base{}, fmt.Errorf("%w: %q: %w", ErrInvalidLanguage, code, err)
	}
	base, conf := tag.Base()
	if conf == language.No || base.String() == "und" {
		return language.Base{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	return base, nil
}

// Negotiate picks the alpha-3 language to use for an Accept-Language header.
// supported lists alpha-3 codes; the first header language (by quality) whose
// base language is supported wins, otherwise fallback is returned.
func Negotiate(acceptLanguage string, supported []string, fallback string) string {
	if acceptLanguage == "" || len(supported) == 0 {
		return fallback
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return fallback
	}

	for _, tag := range tags {
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		if code := base.ISO3(); slices.Contains(supported, code) {
			return code
		}
	}
	return fallback
}
