package services

import (
	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
)

// SettingsService reads and writes viewer settings through the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the stored settings, falling back to defaults for missing keys.
// A nil store yields the defaults.
func (s *SettingsService) Get() domain.Settings {
	defaults := domain.DefaultSettings()
	if s.configStore == nil {
		return defaults
	}

	return domain.Settings{
		InputPath:       s.configStore.GetString(domain.SettingInputPath),
		OutlineExpanded: s.getBool(domain.SettingOutlineExpanded, defaults.OutlineExpanded),
		Collapsed:       s.configStore.GetStringSlice(domain.SettingOutlineCollapsed),
		Mouse:           s.getBool(domain.SettingTUIMouse, defaults.Mouse),
		Watch:           s.getBool(domain.SettingTUIWatch, defaults.Watch),
		RenderTitle:     s.getString(domain.SettingRenderTitle, defaults.RenderTitle),
	}
}

// Save persists settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	if s.configStore == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{domain.SettingInputPath, settings.InputPath},
		{domain.SettingOutlineExpanded, settings.OutlineExpanded},
		{domain.SettingOutlineCollapsed, settings.Collapsed},
		{domain.SettingTUIMouse, settings.Mouse},
		{domain.SettingTUIWatch, settings.Watch},
		{domain.SettingRenderTitle, settings.RenderTitle},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return err
		}
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
