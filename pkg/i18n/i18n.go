// Package i18n holds the translated user-facing strings.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultLocale is used when a locale or a message is missing.
const DefaultLocale = "uk"

//go:embed locales/*.json
var locales embed.FS

type message struct {
	Message string `json:"message"`
}

// Catalog maps message keys to translated text for one locale, falling back
// to a second catalog for keys it lacks.
type Catalog struct {
	locale   string
	messages map[string]message
	fallback *Catalog
}

// Load returns the catalog for locale. Unknown locales resolve to the
// default locale.
func Load(locale string) (*Catalog, error) {
	def, err := parse(DefaultLocale)
	if err != nil {
		return nil, err
	}
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" || locale == DefaultLocale {
		return def, nil
	}
	c, err := parse(locale)
	if err != nil {
		return def, nil
	}
	c.fallback = def
	return c, nil
}

// MustLoad is Load for call sites that cannot handle an error. The default
// catalog is embedded, so it only fails on a broken build.
func MustLoad(locale string) *Catalog {
	c, err := Load(locale)
	if err != nil {
		panic(err)
	}
	return c
}

func parse(locale string) (*Catalog, error) {
	data, err := locales.ReadFile("locales/" + locale + ".json")
	if err != nil {
		return nil, fmt.Errorf("i18n: locale %q: %w", locale, err)
	}
	c := &Catalog{locale: locale, messages: make(map[string]message)}
	if err := json.Unmarshal(data, &c.messages); err != nil {
		return nil, fmt.Errorf("i18n: decode %q: %w", locale, err)
	}
	return c, nil
}

// Locales lists the embedded locales.
func Locales() []string {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return []string{DefaultLocale}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(out)
	return out
}

// Locale is the locale the catalog was loaded for.
func (c *Catalog) Locale() string {
	return c.locale
}

// Get returns the message for key with $1, $2, ... replaced by subs. Missing
// keys fall back to the default locale and then to the key itself.
func (c *Catalog) Get(key string, subs ...string) string {
	for cat := c; cat != nil; cat = cat.fallback {
		if m, ok := cat.messages[key]; ok && m.Message != "" {
			return substitute(m.Message, subs)
		}
	}
	return key
}

func substitute(msg string, subs []string) string {
	for i, s := range subs {
		msg = strings.Replace(msg, "$"+strconv.Itoa(i+1), s, 1)
	}
	return msg
}
