// Package preferences persists the kiosk's theme and locale choice.
package preferences

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"allweather.app/internal/i18n"
	"allweather.app/pkg/errors"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type Preferences struct {
	Theme  Theme       `yaml:"theme"`
	Locale i18n.Locale `yaml:"locale"`
}

func Defaults() Preferences {
	return Preferences{Theme: ThemeLight, Locale: i18n.DefaultLocale}
}

// Store holds the process-wide preferences. Values change only through the
// Set methods, each of which writes the file before returning.
type Store struct {
	path string

	mu    sync.RWMutex
	prefs Preferences
}

func NewStore(path string) *Store {
	return &Store{path: path, prefs: Defaults()}
}

// Load reads the file. A missing file leaves the defaults in place.
// Unknown values fall back to their defaults.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("read preferences %s", s.path), err)
	}

	var loaded Preferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("parse preferences %s", s.path), err)
	}

	prefs := Defaults()
	if loaded.Theme.Valid() {
		prefs.Theme = loaded.Theme
	}
	if loaded.Locale != "" {
		prefs.Locale = i18n.ParseLocale(loaded.Locale.String())
	}

	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
	return nil
}

func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

func (s *Store) SetTheme(theme Theme) error {
	if !theme.Valid() {
		return errors.NewValidationError(fmt.Sprintf("unknown theme %q", theme))
	}
	return s.update(func(p *Preferences) { p.Theme = theme })
}

func (s *Store) SetLocale(locale i18n.Locale) error {
	if i18n.ParseLocale(locale.String()) != locale {
		return errors.NewValidationError(fmt.Sprintf("unsupported locale %q", locale))
	}
	return s.update(func(p *Preferences) { p.Locale = locale })
}

// update applies fn and persists. On a write failure the in-memory value
// is left unchanged.
func (s *Store) update(fn func(*Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	fn(&next)
	if err := s.save(next); err != nil {
		return err
	}
	s.prefs = next
	return nil
}

func (s *Store) save(prefs Preferences) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".preferences-*.yaml")
	if err != nil {
		return errors.NewConfigurationError("create preferences file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewConfigurationError("write preferences file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewConfigurationError("write preferences file", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.NewConfigurationError("replace preferences file", err)
	}
	return nil
}
