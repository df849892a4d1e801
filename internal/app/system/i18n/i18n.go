// Package i18n loads the message catalogs and resolves translated strings.
//
// Catalogs are nested YAML maps flattened into dotted keys
// ("forms.employeeForm.firstName.label"). Values may reference parameters
// as {{name}}. Lookups fall back to English, then to the key itself.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Fallback is the language used when a key or language is missing.
const Fallback = "en"

// Params are interpolation values for a message.
type Params map[string]any

// Translator resolves keys for one language.
type Translator interface {
	T(key string, params Params) string
	Language() string
}

// Bundle holds every loaded catalog.
type Bundle struct {
	catalogs map[string]map[string]string
	langs    []string
	matcher  language.Matcher
	def      string

	mu      sync.RWMutex
	subs    map[int]func(lang string)
	nextSub int
}

// Load reads the embedded catalogs.
func Load() (*Bundle, error) {
	return LoadFS(localesFS, "locales/*.yaml")
}

// LoadFS reads every catalog matching pattern in fsys. The file base name
// (without extension) is the language code.
func LoadFS(fsys fs.FS, pattern string) (*Bundle, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalogs match %s", pattern)
	}

	b := &Bundle{catalogs: map[string]map[string]string{}, subs: map[int]func(string){}}
	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		lang := strings.TrimSuffix(path.Base(f), path.Ext(f))
		flat := map[string]string{}
		flatten("", tree, flat)
		b.catalogs[lang] = flat
	}

	for lang := range b.catalogs {
		b.langs = append(b.langs, lang)
	}
	sort.Strings(b.langs)
	// The fallback goes first so the matcher prefers it on a tie.
	if i := sort.SearchStrings(b.langs, Fallback); i < len(b.langs) && b.langs[i] == Fallback {
		b.langs = append([]string{Fallback}, append(b.langs[:i:i], b.langs[i+1:]...)...)
	}
	tags := make([]language.Tag, 0, len(b.langs))
	for _, l := range b.langs {
		tags = append(tags, language.Make(l))
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Languages lists the loaded language codes, fallback first.
func (b *Bundle) Languages() []string {
	return append([]string(nil), b.langs...)
}

// Supported reports whether a catalog exists for lang.
func (b *Bundle) Supported(lang string) bool {
	_, ok := b.catalogs[lang]
	return ok
}

// Match picks the language for a request: an explicit supported choice
// wins, then the best Accept-Language match, then the default language.
func (b *Bundle) Match(choice, acceptLanguage string) string {
	if b.Supported(choice) {
		return choice
	}
	def := b.Default()
	if acceptLanguage == "" {
		return def
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return def
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return def
	}
	return b.langs[idx]
}

// SetDefault changes the language chosen when a request expresses no
// usable preference. Unsupported languages are rejected.
func (b *Bundle) SetDefault(lang string) error {
	if !b.Supported(lang) {
		return fmt.Errorf("unsupported language %q", lang)
	}
	b.mu.Lock()
	b.def = lang
	b.mu.Unlock()
	return nil
}

// Default returns the language used when nothing else matches.
func (b *Bundle) Default() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.def == "" {
		return Fallback
	}
	return b.def
}

var placeholder = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// T translates key for lang.
func (b *Bundle) T(lang, key string, params Params) string {
	msg, ok := b.catalogs[lang][key]
	if !ok {
		msg, ok = b.catalogs[Fallback][key]
	}
	if !ok {
		return key
	}
	if len(params) == 0 {
		return msg
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		if v, ok := params[name]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}

// For returns a Translator bound to lang (Fallback when unsupported).
func (b *Bundle) For(lang string) Translator {
	if !b.Supported(lang) {
		lang = Fallback
	}
	return localizer{b: b, lang: lang}
}

// Subscribe registers fn to run whenever a session switches language.
func (b *Bundle) Subscribe(fn func(lang string)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextSub++
	id := b.nextSub
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Changed notifies subscribers that a session switched to lang.
func (b *Bundle) Changed(lang string) {
	b.mu.RLock()
	fns := make([]func(string), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		fn(lang)
	}
}

type localizer struct {
	b    *Bundle
	lang string
}

func (l localizer) T(key string, params Params) string { return l.b.T(l.lang, key, params) }
func (l localizer) Language() string                  { return l.lang }
