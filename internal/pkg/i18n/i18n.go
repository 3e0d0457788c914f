package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type Translations map[string]string

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
)

// LoadTranslations reads <localePath>/<locale>/messages.yaml for every locale
// directory present. The site ships two locales, en and es.
func LoadTranslations(localePath string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := os.ReadDir(localePath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := filepath.Join(localePath, locale, "messages.yaml")

		data, err := os.ReadFile(filePath)
		if err != nil {
			continue
		}

		var config struct {
			Messages Translations `yaml:"MESSAGES"`
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		locales[locale] = config.Messages
	}

	return nil
}

// Translate resolves a message key for a locale, falling back to English and
// finally to the key itself. Extra arguments are applied as fmt verbs.
func Translate(locale, key string, args ...interface{}) string {
	mu.RLock()
	defer mu.RUnlock()

	msg := key
	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			msg = val
		} else if locale != "en" {
			if en, ok := locales["en"]; ok {
				if val, ok := en[key]; ok {
					msg = val
				}
			}
		}
	} else if en, ok := locales["en"]; ok {
		if val, ok := en[key]; ok {
			msg = val
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
