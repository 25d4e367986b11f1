package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	domaincfg "opencut-backend/domain/config"
)

// Limits holds the runtime-changeable editing limits
type Limits struct {
	MaxTracksPerTimeline int     `yaml:"maxTracksPerTimeline"`
	MaxClipsPerTrack     int     `yaml:"maxClipsPerTrack"`
	MaxUndoDepth         int     `yaml:"maxUndoDepth"`
	DuplicateGap         float64 `yaml:"duplicateGap"`
	MinPlaybackDuration  float64 `yaml:"minPlaybackDuration"`
}

// DynamicConfig is the shape of the watched YAML limits file. Zero
// fields fall back to the built-in domain defaults.
type DynamicConfig struct {
	Limits   Limits `yaml:"limits"`
	Metadata struct {
		Version   string `yaml:"version"`
		UpdatedBy string `yaml:"updatedBy"`
	} `yaml:"metadata"`
}

// ConfigWatcher watches the limits file and applies changes without a
// restart. Changed limits affect sessions opened after the reload.
type ConfigWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	stopCh   chan struct{}
	onChange []func(*DynamicConfig)

	mu      sync.RWMutex
	current *DynamicConfig
}

// NewConfigWatcher creates a watcher over the limits file at configPath
func NewConfigWatcher(configPath string, logger *zap.Logger) (*ConfigWatcher, error) {
	cfg, err := loadConfigFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}
	// Watch the directory too: editors and config management tools save
	// via rename.
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		logger.Warn("failed to watch config directory", zap.Error(err))
	}

	return &ConfigWatcher{
		path:    configPath,
		watcher: watcher,
		logger:  logger,
		stopCh:  make(chan struct{}),
		current: cfg,
	}, nil
}

// Start begins watching for configuration changes
func (w *ConfigWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("configuration watcher started", zap.String("path", w.path))
}

// Stop stops watching for configuration changes
func (w *ConfigWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

// OnChange registers a callback invoked after every successful reload
func (w *ConfigWatcher) OnChange(handler func(*DynamicConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// GetCurrent returns the current configuration
func (w *ConfigWatcher) GetCurrent() *DynamicConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// DomainConfig merges the current limits over the built-in domain
// defaults. Unset (zero) limits keep their defaults.
func (w *ConfigWatcher) DomainConfig() *domaincfg.DomainConfig {
	return MergeLimits(w.GetCurrent())
}

// MergeLimits builds a domain config from dynamic limits, defaulting
// every unset field. A nil dynamic config yields the pure defaults.
func MergeLimits(dc *DynamicConfig) *domaincfg.DomainConfig {
	cfg := domaincfg.DefaultDomainConfig()
	if dc == nil {
		return cfg
	}
	if dc.Limits.MaxTracksPerTimeline > 0 {
		cfg.MaxTracksPerTimeline = dc.Limits.MaxTracksPerTimeline
	}
	if dc.Limits.MaxClipsPerTrack > 0 {
		cfg.MaxClipsPerTrack = dc.Limits.MaxClipsPerTrack
	}
	if dc.Limits.MaxUndoDepth > 0 {
		cfg.MaxUndoDepth = dc.Limits.MaxUndoDepth
	}
	if dc.Limits.DuplicateGap > 0 {
		cfg.DuplicateGap = dc.Limits.DuplicateGap
	}
	if dc.Limits.MinPlaybackDuration > 0 {
		cfg.MinPlaybackDuration = dc.Limits.MinPlaybackDuration
	}
	return cfg
}

func (w *ConfigWatcher) watchLoop() {
	var debounceTimer *time.Timer
	const debounce = 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, w.handleConfigChange)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", zap.Error(err))
		}
	}
}

func (w *ConfigWatcher) handleConfigChange() {
	newConfig, err := loadConfigFromFile(w.path)
	if err != nil {
		w.logger.Error("failed to reload configuration", zap.Error(err))
		return
	}
	if err := validateLimits(newConfig.Limits); err != nil {
		w.logger.Error("invalid configuration, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = newConfig
	handlers := append([]func(*DynamicConfig){}, w.onChange...)
	w.mu.Unlock()

	for _, handler := range handlers {
		go handler(newConfig)
	}

	w.logger.Info("configuration reloaded",
		zap.String("version", newConfig.Metadata.Version),
		zap.Int("maxTracks", newConfig.Limits.MaxTracksPerTimeline),
		zap.Int("maxClips", newConfig.Limits.MaxClipsPerTrack),
	)
}

func validateLimits(l Limits) error {
	if l.MaxTracksPerTimeline < 0 {
		return fmt.Errorf("maxTracksPerTimeline cannot be negative")
	}
	if l.MaxClipsPerTrack < 0 {
		return fmt.Errorf("maxClipsPerTrack cannot be negative")
	}
	if l.MaxUndoDepth < 0 {
		return fmt.Errorf("maxUndoDepth cannot be negative")
	}
	if l.DuplicateGap < 0 {
		return fmt.Errorf("duplicateGap cannot be negative")
	}
	if l.MinPlaybackDuration < 0 {
		return fmt.Errorf("minPlaybackDuration cannot be negative")
	}
	return nil
}

func loadConfigFromFile(path string) (*DynamicConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg DynamicConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := validateLimits(cfg.Limits); err != nil {
		return nil, err
	}
	return &cfg, nil
}
