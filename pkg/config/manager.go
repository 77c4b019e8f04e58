package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/XiaoConstantine/evolve-go/pkg/logging"
	"gopkg.in/yaml.v3"
)

// Manager owns the loaded configuration: it reads it from sources, hands out
// sections, and coordinates updates, persistence, and file watching. All
// accessors are safe for concurrent use.
type Manager struct {
	mu          sync.RWMutex
	config      *Config
	configPath  string
	discovery   *Discovery
	sources     []Source
	watchers    []ConfigWatcher
	watcherDone chan struct{}
}

// ConfigWatcher observes configuration changes. Returning an error vetoes
// the change where rollback is possible.
type ConfigWatcher func(*Config) error

// ManagerOption customizes a Manager during construction.
type ManagerOption func(*Manager) error

// WithConfigPath pins the manager to one configuration file instead of
// running discovery.
func WithConfigPath(path string) ManagerOption {
	return func(m *Manager) error {
		m.configPath = path
		return nil
	}
}

// WithDiscovery replaces the default file discovery.
func WithDiscovery(discovery *Discovery) ManagerOption {
	return func(m *Manager) error {
		m.discovery = discovery
		return nil
	}
}

// WithSources replaces the default configuration sources.
func WithSources(sources ...Source) ManagerOption {
	return func(m *Manager) error {
		m.sources = sources
		return nil
	}
}

// WithWatcher registers a watcher that is notified on every configuration
// change.
func WithWatcher(watcher ConfigWatcher) ManagerOption {
	return func(m *Manager) error {
		m.watchers = append(m.watchers, watcher)
		return nil
	}
}

// NewManager builds a Manager from the given options. Anything not supplied
// falls back to standard discovery and the file and environment sources.
func NewManager(options ...ManagerOption) (*Manager, error) {
	m := &Manager{watcherDone: make(chan struct{})}

	for _, opt := range options {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("failed to apply manager option: %w", err)
		}
	}

	if m.discovery == nil {
		m.discovery = NewDiscovery()
	}
	if len(m.sources) == 0 {
		m.sources = defaultSources()
	}
	return m, nil
}

// defaultSources reads the file first so environment variables override it.
func defaultSources() []Source {
	return []Source{NewFileSource(), NewEnvironmentSource()}
}

// copyByYAML deep-copies src into dst through a YAML round trip. Config is
// plain data, which keeps this both correct and cheap enough for management
// operations.
func copyByYAML(src, dst any) error {
	data, err := yaml.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return nil
}

// Load builds a fresh configuration: defaults first, then every source in
// order, then validation. The loaded result replaces the current one only
// when all steps succeed.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths, err := m.resolvePaths()
	if err != nil {
		return err
	}

	cfg := &Config{}
	if err := copyByYAML(GetDefaultConfig(), cfg); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	for _, source := range m.sources {
		if err := source.Load(cfg, paths); err != nil {
			return fmt.Errorf("failed to load from source %T: %w", source, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = cfg
	if len(paths) > 0 {
		m.configPath = paths[0]
	}
	return nil
}

// resolvePaths returns the files to read: the explicit path when one is
// set, otherwise whatever discovery turns up.
func (m *Manager) resolvePaths() ([]string, error) {
	if m.configPath != "" {
		return []string{m.configPath}, nil
	}
	paths, err := m.discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover configuration files: %w", err)
	}
	return paths, nil
}

// Get returns the current configuration, or nil before Load.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// sectionOf returns one section of the loaded configuration, or nil when
// nothing is loaded yet.
func sectionOf[S any](m *Manager, pick func(*Config) *S) *S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return nil
	}
	return pick(m.config)
}

// GetEngineConfig returns the engine section, or nil before Load.
func (m *Manager) GetEngineConfig() *EngineConfig {
	return sectionOf(m, func(c *Config) *EngineConfig { return &c.Engine })
}

// GetRunConfig returns the run section, or nil before Load.
func (m *Manager) GetRunConfig() *RunConfig {
	return sectionOf(m, func(c *Config) *RunConfig { return &c.Run })
}

// GetPoolConfig returns the gene pool section, or nil before Load.
func (m *Manager) GetPoolConfig() *PoolConfig {
	return sectionOf(m, func(c *Config) *PoolConfig { return &c.Pool })
}

// GetLoggingConfig returns the logging section, or nil before Load.
func (m *Manager) GetLoggingConfig() *LoggingConfig {
	return sectionOf(m, func(c *Config) *LoggingConfig { return &c.Logging })
}

// GetConcurrencyConfig returns the concurrency section, or nil before Load.
func (m *Manager) GetConcurrencyConfig() *ConcurrencyConfig {
	return sectionOf(m, func(c *Config) *ConcurrencyConfig { return &c.Concurrency })
}

// GetConfigPath returns the path of the configuration file in use.
func (m *Manager) GetConfigPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configPath
}

// IsLoaded reports whether a configuration has been loaded.
func (m *Manager) IsLoaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config != nil
}

// Update applies updater to a copy of the configuration, validates the
// result, and installs it. The current configuration is untouched when
// either step fails.
func (m *Manager) Update(updater func(*Config) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("no configuration loaded")
	}

	next := *m.config
	if err := updater(&next); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("updated configuration validation failed: %w", err)
	}

	m.config = &next
	if err := m.notifyWatchers(m.config); err != nil {
		return fmt.Errorf("failed to notify watchers: %w", err)
	}
	return nil
}

// Reset replaces the configuration with the defaults.
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	defaults := GetDefaultConfig()
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("default configuration validation failed: %w", err)
	}

	m.config = defaults
	if err := m.notifyWatchers(m.config); err != nil {
		return fmt.Errorf("failed to notify watchers: %w", err)
	}
	return nil
}

// Reload re-reads the configuration and notifies watchers. When a watcher
// rejects the new configuration, the previous one is restored.
func (m *Manager) Reload() error {
	previous := m.Get()

	if err := m.Load(); err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	if err := m.notifyWatchers(m.Get()); err != nil {
		m.mu.Lock()
		m.config = previous
		m.mu.Unlock()
		return fmt.Errorf("failed to notify watchers, restored previous configuration: %w", err)
	}
	return nil
}

// notifyWatchers runs every watcher against config, stopping at the first
// failure.
func (m *Manager) notifyWatchers(config *Config) error {
	for i, watcher := range m.watchers {
		if err := watcher(config); err != nil {
			return fmt.Errorf("watcher %d failed: %w", i, err)
		}
	}
	return nil
}

// Watch reloads the configuration whenever its file changes on disk. It
// requires an explicit or previously discovered configuration path.
func (m *Manager) Watch() error {
	if m.configPath == "" {
		return fmt.Errorf("no configuration file path to watch")
	}
	go m.watchFile()
	return nil
}

// StopWatching terminates the watch goroutine.
func (m *Manager) StopWatching() {
	close(m.watcherDone)
}

const watchPollInterval = time.Second

// watchFile polls the configuration file and reloads it when its
// modification time advances. Reload failures keep the previous
// configuration and the watch alive.
func (m *Manager) watchFile() {
	lastMod := modTime(m.configPath)

	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.watcherDone:
			return
		case <-ticker.C:
			current := modTime(m.configPath)
			if !current.After(lastMod) {
				continue
			}
			lastMod = current
			if err := m.Reload(); err != nil {
				logging.GetLogger().Warn(context.Background(), "Failed to reload configuration: %v", err)
			}
		}
	}
}

// modTime returns the file's modification time, or the zero time when the
// file cannot be stat'ed.
func modTime(path string) time.Time {
	if stat, err := os.Stat(path); err == nil {
		return stat.ModTime()
	}
	return time.Time{}
}

// Save writes the current configuration back to the file it was loaded
// from.
func (m *Manager) Save() error {
	m.mu.RLock()
	cfg, path := m.config, m.configPath
	m.mu.RUnlock()

	if cfg == nil {
		return fmt.Errorf("no configuration to save")
	}
	if path == "" {
		return fmt.Errorf("no configuration file path specified")
	}
	return m.SaveToFile(path)
}

// SaveToFile writes the current configuration to path as YAML, creating
// parent directories as needed.
func (m *Manager) SaveToFile(path string) error {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	if cfg == nil {
		return fmt.Errorf("no configuration to save")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

// Clone returns a deep copy of the current configuration.
func (m *Manager) Clone() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}

	var out Config
	if err := copyByYAML(m.config, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Merge overlays other onto the current configuration and validates the
// result. With nothing loaded yet, other is adopted as-is.
func (m *Manager) Merge(other *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		m.config = other
		return nil
	}

	var merged Config
	if err := copyByYAML(m.config, &merged); err != nil {
		return err
	}
	if err := copyByYAML(other, &merged); err != nil {
		return err
	}
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("merged configuration validation failed: %w", err)
	}

	m.config = &merged
	if err := m.notifyWatchers(m.config); err != nil {
		return fmt.Errorf("failed to notify watchers: %w", err)
	}
	return nil
}

// Export renders the configuration as a nested map for callers that
// post-process it outside this package.
func (m *Manager) Export() (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}

	var out map[string]interface{}
	if err := copyByYAML(m.config, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Import replaces the configuration with one built from a nested map, after
// validation.
func (m *Manager) Import(data map[string]interface{}) error {
	var cfg Config
	if err := copyByYAML(data, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("imported configuration validation failed: %w", err)
	}

	m.mu.Lock()
	m.config = &cfg
	m.mu.Unlock()

	if err := m.notifyWatchers(&cfg); err != nil {
		return fmt.Errorf("failed to notify watchers: %w", err)
	}
	return nil
}

// Process-wide manager, created lazily.
var (
	globalManager     *Manager
	globalManagerOnce sync.Once
	globalManagerMu   sync.RWMutex
)

// GetGlobalManager returns the process-wide Manager, creating it on first
// use.
func GetGlobalManager() *Manager {
	globalManagerMu.RLock()
	existing := globalManager
	globalManagerMu.RUnlock()
	if existing != nil {
		return existing
	}

	globalManagerOnce.Do(func() {
		manager, err := NewManager()
		if err != nil {
			manager = &Manager{
				discovery:   NewDiscovery(),
				sources:     defaultSources(),
				watcherDone: make(chan struct{}),
			}
		}
		globalManagerMu.Lock()
		globalManager = manager
		globalManagerMu.Unlock()
	})

	globalManagerMu.RLock()
	defer globalManagerMu.RUnlock()
	return globalManager
}

// SetGlobalManager replaces the process-wide Manager.
func SetGlobalManager(manager *Manager) {
	globalManagerMu.Lock()
	defer globalManagerMu.Unlock()
	globalManager = manager
}

// LoadGlobalConfig loads the process-wide configuration.
func LoadGlobalConfig() error {
	return GetGlobalManager().Load()
}

// GetGlobalConfig returns the process-wide configuration.
func GetGlobalConfig() *Config {
	return GetGlobalManager().Get()
}

// ReloadGlobalConfig reloads the process-wide configuration.
func ReloadGlobalConfig() error {
	return GetGlobalManager().Reload()
}
