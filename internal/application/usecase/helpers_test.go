package usecase

import (
	"fmt"
	"sync"

	"github.com/bnema/medusa/internal/application/port"
)

// memSettings is an in-memory SettingsStore keyed by "section.key".
type memSettings struct {
	mu      sync.Mutex
	values  map[string]any
	updates []string
}

func newMemSettings(values map[string]any) *memSettings {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &memSettings{values: copied}
}

func (s *memSettings) Bool(section, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _ := s.values[section+"."+key].(bool)
	return v
}

func (s *memSettings) String(section, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _ := s.values[section+"."+key].(string)
	return v
}

func (s *memSettings) UpdateSetting(section, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[section+"."+key] = value
	s.updates = append(s.updates, fmt.Sprintf("%s.%s=%v", section, key, value))
	return nil
}

func defaultSettings() map[string]any {
	return map[string]any{
		port.SectionBrowser + "." + port.KeyHomePage:          "https://duckduckgo.com",
		port.SectionBrowser + "." + port.KeySearchEngine:      "duckduckgo",
		port.SectionPrivacy + "." + port.KeyEnableAdBlocker:   true,
		port.SectionPrivacy + "." + port.KeyClearOnExit:       false,
		port.SectionPrivacy + "." + port.KeyDoNotTrack:        true,
		port.SectionPrivacy + "." + port.KeyJavaScriptEnabled: true,
		port.SectionPrivacy + "." + port.KeyBlockTrackers:     true,
		port.SectionPrivacy + "." + port.KeyCookiePolicy:      "no_third_party",
		port.SectionSecurity + "." + port.KeyHTTPSOnly:        true,
		port.SectionSecurity + "." + port.KeyEnableTor:        false,
		port.SectionSecurity + "." + port.KeyBlockPopups:      true,
	}
}

func settingsWith(overrides map[string]any) *memSettings {
	values := defaultSettings()
	for k, v := range overrides {
		values[k] = v
	}
	return newMemSettings(values)
}
