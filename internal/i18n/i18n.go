// Package i18n renders user-facing messages from embedded locale catalogs.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

// BaseLocale is the fallback locale for missing keys.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Ensure Localizer implements the interface.
var _ driven.Localizer = (*Localizer)(nil)

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	builder *catalog.Builder
	locales map[string]map[string]string
	tags    []language.Tag
	matcher language.Matcher
	baseTag language.Tag
}

// LoadEmbedded loads the catalogs shipped with the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS loads every locales/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{
		builder: catalog.NewBuilder(catalog.Fallback(language.Make(BaseLocale))),
		locales: map[string]map[string]string{},
	}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := b.add(path, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The base locale leads so the matcher falls back to it.
	b.baseTag = language.Make(BaseLocale)
	b.tags = []language.Tag{b.baseTag}
	for _, locale := range b.Locales() {
		if locale != BaseLocale {
			b.tags = append(b.tags, language.Make(locale))
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) add(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", path)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale %q: %w", path, locale, err)
	}
	if _, exists := b.locales[locale]; exists {
		return fmt.Errorf("catalog %s: locale %q already defined", path, locale)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", path)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", path)
		}
		if err := b.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("catalog %s: key %q: %w", path, key, err)
		}
		messages[key] = value
	}
	b.locales[locale] = messages
	return nil
}

// Locales returns the loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Keys returns the message keys of one locale, sorted.
func (b *Bundle) Keys(locale string) []string {
	messages := b.locales[locale]
	out := make([]string, 0, len(messages))
	for key := range messages {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Localizer renders messages for one matched locale.
type Localizer struct {
	bundle  *Bundle
	locale  string
	printer *message.Printer
	base    *message.Printer
}

// Localizer returns a localizer for the closest supported locale.
// Unknown or empty preferences resolve to the base locale.
func (b *Bundle) Localizer(preferred ...string) *Localizer {
	tag := b.baseTag
	if len(preferred) > 0 {
		wanted, _, err := language.ParseAcceptLanguage(strings.Join(preferred, ","))
		if err == nil && len(wanted) > 0 {
			_, idx, confidence := b.matcher.Match(wanted...)
			if confidence != language.No {
				tag = b.tags[idx]
			}
		}
	}
	return &Localizer{
		bundle:  b,
		locale:  tag.String(),
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
		base:    message.NewPrinter(b.baseTag, message.Catalog(b.builder)),
	}
}

// Locale returns the locale messages are rendered in.
func (l *Localizer) Locale() string {
	return l.locale
}

// Text renders key with args. Keys missing from the matched locale use the
// base locale; keys missing from every catalog are returned as-is, followed
// by any args.
func (l *Localizer) Text(key string, args ...any) string {
	if _, ok := l.bundle.locales[l.locale][key]; ok {
		return l.printer.Sprintf(key, args...)
	}
	if _, ok := l.bundle.locales[BaseLocale][key]; ok {
		return l.base.Sprintf(key, args...)
	}
	if len(args) == 0 {
		return key
	}
	return key + ": " + fmt.Sprint(args...)
}
