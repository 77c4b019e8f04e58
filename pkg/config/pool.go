package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/XiaoConstantine/evolve-go/pkg/core"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// PoolSection is the INI section holding gene definitions. Each key names
// a gene and its value lists the alleles, comma separated.
const PoolSection = "genes"

// LoadPool loads a gene pool from a file. The format is taken from the
// explicit format name when given, otherwise inferred from the file
// extension (.yaml/.yml or .ini).
func LoadPool(path, format string) (core.Pool[string], error) {
	if path == "" {
		return nil, fmt.Errorf("no gene pool path specified")
	}

	if format == "" {
		format = formatForExtension(filepath.Ext(path))
	}

	switch format {
	case "yaml":
		return LoadPoolYAML(path)
	case "ini":
		return LoadPoolINI(path)
	case "":
		return nil, fmt.Errorf("cannot infer gene pool format from extension of %s", path)
	default:
		return nil, fmt.Errorf("unsupported gene pool format: %s", format)
	}
}

// LoadPoolYAML loads a gene pool from a YAML file mapping gene names to
// allele lists.
func LoadPoolYAML(path string) (core.Pool[string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gene pool file %s: %w", path, err)
	}

	var genes map[string][]string
	if err := yaml.Unmarshal(data, &genes); err != nil {
		return nil, fmt.Errorf("failed to parse YAML gene pool from %s: %w", path, err)
	}

	pool := core.Pool[string](genes)
	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gene pool in %s: %w", path, err)
	}

	return pool, nil
}

// LoadPoolINI loads a gene pool from an INI file. Genes live in the
// [genes] section, one key per gene with comma separated alleles.
func LoadPoolINI(path string) (core.Pool[string], error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load gene pool file %s: %w", path, err)
	}

	section := cfg.Section(PoolSection)
	keys := section.Keys()
	if len(keys) == 0 {
		return nil, fmt.Errorf("gene pool file %s has no [%s] section or it is empty", path, PoolSection)
	}

	pool := make(core.Pool[string], len(keys))
	for _, key := range keys {
		pool[key.Name()] = key.Strings(",")
	}

	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gene pool in %s: %w", path, err)
	}

	return pool, nil
}

// LoadPool loads the gene pool referenced by this configuration.
func (c *PoolConfig) LoadPool() (core.Pool[string], error) {
	return LoadPool(c.Path, c.Format)
}

// SavePoolYAML writes a gene pool to a YAML file, creating parent
// directories when missing.
func SavePoolYAML(pool core.Pool[string], path string) error {
	if err := pool.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid gene pool: %w", err)
	}

	data, err := yaml.Marshal(map[string][]string(pool))
	if err != nil {
		return fmt.Errorf("failed to marshal gene pool: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create gene pool directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write gene pool file: %w", err)
	}

	return nil
}
