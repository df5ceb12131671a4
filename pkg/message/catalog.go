package message

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog is a map-backed Translator keyed by locale then message id. It is
// safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]map[string]string)}
}

// Add registers translations for a locale, overwriting existing ids.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]map[string]string)
	}
	bucket := c.entries[locale]
	if bucket == nil {
		bucket = make(map[string]string, len(messages))
		c.entries[locale] = bucket
	}
	for id, text := range messages {
		bucket[strings.TrimSpace(id)] = text
	}
}

// Translate implements Translator. Args are substituted into `{name}`
// placeholders when supplied as a single map.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	c.mu.RLock()
	text, ok := c.entries[normalizeLocale(locale)][key]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("message: no %q translation for %q", locale, key)
	}
	if len(args) == 1 {
		if params, ok := args[0].(map[string]any); ok {
			for name, value := range params {
				text = strings.ReplaceAll(text, "{"+name+"}", fmt.Sprint(value))
			}
		}
	}
	return text, nil
}

// Locales lists the locales present in the catalog.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.entries))
	for locale := range c.entries {
		out = append(out, locale)
	}
	return out
}

// LoadCatalogFS reads every JSON/YAML file in fsys. Each file maps locale to
// a flat id -> text table:
//
//	en:
//	  form.required: Required
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	catalog := NewCatalog()
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("message: read %s: %w", path, err)
		}
		doc, err := parseCatalog(data, path)
		if err != nil {
			return err
		}
		for locale, messages := range doc {
			catalog.Add(locale, messages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func parseCatalog(data []byte, source string) (map[string]map[string]string, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("message: catalog %s is empty", source)
	}
	var doc map[string]map[string]string
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return nil, fmt.Errorf("message: parse %s: invalid JSON or YAML", source)
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
