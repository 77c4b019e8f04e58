package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Discovery locates configuration files on disk. It scans an ordered list of
// directories for an ordered list of candidate filenames, so earlier entries
// win when a caller takes the first hit.
type Discovery struct {
	searchPaths []string
	filenames   []string
}

// NewDiscovery returns a Discovery covering the standard search paths and
// filenames.
func NewDiscovery() *Discovery {
	return NewDiscoveryWithOptions(defaultSearchPaths(), defaultFilenames())
}

// NewDiscoveryWithPaths returns a Discovery restricted to the given search
// paths, keeping the standard filenames.
func NewDiscoveryWithPaths(searchPaths []string) *Discovery {
	return NewDiscoveryWithOptions(searchPaths, defaultFilenames())
}

// NewDiscoveryWithFilenames returns a Discovery looking for the given
// filenames in the standard search paths.
func NewDiscoveryWithFilenames(filenames []string) *Discovery {
	return NewDiscoveryWithOptions(defaultSearchPaths(), filenames)
}

// NewDiscoveryWithOptions returns a Discovery with explicit search paths and
// filenames.
func NewDiscoveryWithOptions(searchPaths, filenames []string) *Discovery {
	return &Discovery{searchPaths: searchPaths, filenames: filenames}
}

// defaultSearchPaths lists the directories scanned when no explicit paths are
// configured. Order matters: the working directory and per-user locations
// come before system-wide and XDG directories.
func defaultSearchPaths() []string {
	paths := []string{"."}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			home,
			filepath.Join(home, ".config", "evolve-go"),
			filepath.Join(home, ".evolve-go"),
		)
	}

	paths = append(paths, "/etc/evolve-go", "/usr/local/etc/evolve-go")

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, "evolve-go"))
	}
	for _, dir := range strings.Split(os.Getenv("XDG_CONFIG_DIRS"), ":") {
		if dir != "" {
			paths = append(paths, filepath.Join(dir, "evolve-go"))
		}
	}

	if override := os.Getenv("EVOLVE_CONFIG_DIR"); override != "" {
		paths = append(paths, override)
	}

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths,
			filepath.Join(cwd, "config"),
			filepath.Join(cwd, "configs"),
			filepath.Join(cwd, ".config"),
		)
	}

	return paths
}

// defaultFilenames lists the filenames recognized as configuration files.
// The first entry is also the name used when a default file is created.
func defaultFilenames() []string {
	return []string{
		"evolve.yaml",
		"evolve.yml",
		"evolve-go.yaml",
		"evolve-go.yml",
		"config.yaml",
		"config.yml",
		".evolve.yaml",
		".evolve.yml",
		".evolve-go.yaml",
		".evolve-go.yml",
	}
}

// AddSearchPath appends one directory to the search list.
func (d *Discovery) AddSearchPath(path string) {
	d.searchPaths = append(d.searchPaths, path)
}

// AddSearchPaths appends several directories to the search list.
func (d *Discovery) AddSearchPaths(paths []string) {
	d.searchPaths = append(d.searchPaths, paths...)
}

// SetSearchPaths replaces the search list.
func (d *Discovery) SetSearchPaths(paths []string) {
	d.searchPaths = paths
}

// GetSearchPaths reports the current search list.
func (d *Discovery) GetSearchPaths() []string {
	return d.searchPaths
}

// AddFilename appends one candidate filename.
func (d *Discovery) AddFilename(filename string) {
	d.filenames = append(d.filenames, filename)
}

// AddFilenames appends several candidate filenames.
func (d *Discovery) AddFilenames(filenames []string) {
	d.filenames = append(d.filenames, filenames...)
}

// SetFilenames replaces the candidate filenames.
func (d *Discovery) SetFilenames(filenames []string) {
	d.filenames = filenames
}

// GetFilenames reports the current candidate filenames.
func (d *Discovery) GetFilenames() []string {
	return d.filenames
}

// filesIn returns the absolute paths of every candidate filename present in
// one directory, in filename order.
func (d *Discovery) filesIn(dir string) ([]string, error) {
	var found []string
	for _, name := range d.filenames {
		candidate := filepath.Join(dir, name)
		if !fileExists(candidate) {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", candidate, err)
		}
		found = append(found, abs)
	}
	return found, nil
}

// Discover walks the search paths in order and returns every configuration
// file found, as absolute paths with duplicates removed.
func (d *Discovery) Discover() ([]string, error) {
	var found []string
	for _, dir := range d.searchPaths {
		hits, err := d.filesIn(dir)
		if err != nil {
			return nil, err
		}
		found = append(found, hits...)
	}
	return removeDuplicates(found), nil
}

// DiscoverFirst returns the highest-priority configuration file, or an error
// when no search path holds one.
func (d *Discovery) DiscoverFirst() (string, error) {
	files, err := d.Discover()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no configuration files found")
	}
	return files[0], nil
}

// DiscoverInPath returns the configuration files present in a single
// directory, ignoring the configured search paths.
func (d *Discovery) DiscoverInPath(path string) ([]string, error) {
	return d.filesIn(path)
}

// DiscoverWithPattern globs each search path with the given pattern instead
// of matching the configured filenames.
func (d *Discovery) DiscoverWithPattern(pattern string) ([]string, error) {
	var found []string
	for _, dir := range d.searchPaths {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to expand pattern %s under %s: %w", pattern, dir, err)
		}
		for _, match := range matches {
			if !fileExists(match) {
				continue
			}
			abs, err := filepath.Abs(match)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", match, err)
			}
			found = append(found, abs)
		}
	}
	return removeDuplicates(found), nil
}

// DiscoverRecursive descends into every search path and returns all files
// whose base name matches a candidate filename. Unreadable entries are
// skipped rather than failing the scan.
func (d *Discovery) DiscoverRecursive() ([]string, error) {
	var found []string
	for _, root := range d.searchPaths {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			if !d.wantsFilename(filepath.Base(path)) {
				return nil
			}
			abs, absErr := filepath.Abs(path)
			if absErr != nil {
				return fmt.Errorf("failed to resolve absolute path for %s: %w", path, absErr)
			}
			found = append(found, abs)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
	}
	return removeDuplicates(found), nil
}

func (d *Discovery) wantsFilename(name string) bool {
	for _, candidate := range d.filenames {
		if candidate == name {
			return true
		}
	}
	return false
}

// writeDefaultConfig materializes the default configuration as the first
// candidate filename inside dir, creating dir when needed. An existing file
// is never overwritten.
func (d *Discovery) writeDefaultConfig(dir string) (string, error) {
	if len(d.filenames) == 0 {
		return "", fmt.Errorf("no filenames configured")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	target := filepath.Join(dir, d.filenames[0])
	if fileExists(target) {
		return "", fmt.Errorf("configuration file already exists at %s", target)
	}

	seed := &Manager{config: GetDefaultConfig()}
	if err := seed.SaveToFile(target); err != nil {
		return "", fmt.Errorf("failed to save default config to %s: %w", target, err)
	}
	return target, nil
}

// CreateDefaultConfigFile writes a default configuration file into the first
// search path and returns its location.
func (d *Discovery) CreateDefaultConfigFile() (string, error) {
	if len(d.searchPaths) == 0 {
		return "", fmt.Errorf("no search paths configured")
	}
	return d.writeDefaultConfig(d.searchPaths[0])
}

// CreateDefaultConfigFileInPath writes a default configuration file into the
// given directory and returns its location.
func (d *Discovery) CreateDefaultConfigFileInPath(path string) (string, error) {
	return d.writeDefaultConfig(path)
}

// Validate checks that the Discovery can possibly find anything: both lists
// must be non-empty and at least one search path must exist.
func (d *Discovery) Validate() error {
	if len(d.searchPaths) == 0 {
		return fmt.Errorf("no search paths configured")
	}
	if len(d.filenames) == 0 {
		return fmt.Errorf("no filenames configured")
	}
	for _, path := range d.searchPaths {
		if dirExists(path) {
			return nil
		}
	}
	return fmt.Errorf("none of the configured search paths exist")
}

// envOverridePrefix marks environment variables that carry configuration
// overrides. EVOLVE_GO_ spellings share this prefix, so they come back with
// a leading "go." segment in the key.
const envOverridePrefix = "EVOLVE_"

// GetEnvironmentOverrides collects EVOLVE_-prefixed environment variables as
// a map of dotted, lower-case configuration keys to their raw values.
func (d *Discovery) GetEnvironmentOverrides() map[string]string {
	overrides := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(key, envOverridePrefix)
		if !ok {
			continue
		}
		overrides[strings.ReplaceAll(strings.ToLower(rest), "_", ".")] = value
	}
	return overrides
}

// fileExists reports whether path names a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// dirExists reports whether path names a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// removeDuplicates drops repeated entries while keeping first-seen order.
func removeDuplicates(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DiscoverConfigFiles runs a full discovery with the default settings.
func DiscoverConfigFiles() ([]string, error) {
	return NewDiscovery().Discover()
}

// DiscoverFirstConfigFile returns the highest-priority configuration file
// under the default settings.
func DiscoverFirstConfigFile() (string, error) {
	return NewDiscovery().DiscoverFirst()
}

// DiscoverConfigFilesInPath returns the configuration files present in one
// directory under the default filename set.
func DiscoverConfigFilesInPath(path string) ([]string, error) {
	return NewDiscovery().DiscoverInPath(path)
}

// CreateDefaultConfigFileInCurrentDir writes a default configuration file
// into the working directory.
func CreateDefaultConfigFileInCurrentDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return NewDiscovery().CreateDefaultConfigFileInPath(cwd)
}

// CreateDefaultConfigFileInHomeDir writes a default configuration file into
// ~/.config/evolve-go.
func CreateDefaultConfigFileInHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewDiscovery().CreateDefaultConfigFileInPath(filepath.Join(home, ".config", "evolve-go"))
}
