// hot-reload.go: dynamic configuration with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package arena

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// growthStepSetter is implemented by *Arena[T] for any T. HotConfig is not
// itself generic: it only ever touches the one field that can change after
// construction, so it depends on this narrow interface instead of Arena[T].
type growthStepSetter interface {
	SetMaxGrowthStep(step int)
}

// HotConfig provides dynamic configuration reload capabilities using Argus.
// It watches a configuration file and live-updates an Arena's MaxGrowthStep
// when changes are detected. BitArrayLen is never touched by hot reload: it
// is baked into the meaning of every key the arena has already issued, so
// changing it live would silently corrupt outstanding handles.
type HotConfig struct {
	arena   growthStepSetter
	watcher *argus.Watcher
	mu      sync.RWMutex
	config  Config

	// OnReload is called after configuration is successfully reloaded.
	// This callback is optional and must be fast and non-blocking.
	OnReload func(oldConfig, newConfig Config)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after configuration is successfully reloaded.
	OnReload func(oldConfig, newConfig Config)

	// Logger for hot reload operations. If nil, NoOpLogger is used.
	Logger Logger
}

// NewHotConfig creates a new hot-reloadable configuration for an arena. It
// starts watching the configuration file immediately.
//
// Example configuration file (YAML):
//
//	arena:
//	  max_growth_step: 32
//
// Supported configuration keys:
//   - arena.max_growth_step (int): cap on buckets appended per growth round
//
// Note: BitArrayLen cannot be changed dynamically; it is fixed for the
// lifetime of the arena and any attempt to set it in the watched file is
// ignored.
func NewHotConfig[T any](a *Arena[T], opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	hc := &HotConfig{
		arena:    a,
		OnReload: opts.OnReload,
		config:   DefaultConfig(),
	}

	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// GetConfig returns the current configuration (thread-safe).
func (hc *HotConfig) GetConfig() Config {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config
}

// handleConfigChange is called by Argus when the configuration file changes.
func (hc *HotConfig) handleConfigChange(configData map[string]interface{}) {
	hc.mu.Lock()
	oldConfig := hc.config
	newConfig := hc.parseConfig(configData)
	hc.config = newConfig
	hc.mu.Unlock()

	hc.applyChanges(oldConfig, newConfig)

	if hc.OnReload != nil {
		hc.OnReload(oldConfig, newConfig)
	}
}

// parsePositiveInt extracts a positive integer from interface{} value.
// Supports both int and float64 types (YAML/JSON may vary).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

// parseConfig extracts arena configuration from Argus config data.
func (hc *HotConfig) parseConfig(data map[string]interface{}) Config {
	config := hc.config

	arenaSection, ok := data["arena"].(map[string]interface{})
	if !ok {
		if _, hasStep := data["max_growth_step"]; hasStep {
			arenaSection = data
		} else {
			return config
		}
	}

	if step, ok := parsePositiveInt(arenaSection["max_growth_step"]); ok {
		config.MaxGrowthStep = step
	}

	return config
}

// applyChanges applies configuration changes to the running arena.
// BitArrayLen is intentionally never read here: it cannot be applied to a
// live arena without invalidating every key already handed out.
func (hc *HotConfig) applyChanges(old, new Config) {
	if new.MaxGrowthStep != old.MaxGrowthStep {
		hc.arena.SetMaxGrowthStep(new.MaxGrowthStep)
	}
}
