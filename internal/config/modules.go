package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Selection holds the codec module selection lists. Each list supports the
// "all" wildcard and "-name" exclusion entries.
type Selection struct {
	Encoders []string `toml:"encoders" json:"encoders"`
	CSC      []string `toml:"csc" json:"csc"`
	Decoders []string `toml:"decoders" json:"decoders"`
}

// DefaultSelection enables every installed module of each kind.
func DefaultSelection() Selection {
	return Selection{
		Encoders: []string{"all"},
		CSC:      []string{"all"},
		Decoders: []string{"all"},
	}
}

// LoadSelection reads the [modules] table from a TOML config file. A missing
// file or a file without a [modules] table yields the default selection.
func LoadSelection(configPath string) (Selection, error) {
	sel := DefaultSelection()

	if configPath == "" {
		return sel, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return sel, nil
		}
		return sel, fmt.Errorf("failed to read modules config: %w", err)
	}

	var rawConfig struct {
		Modules *Selection `toml:"modules"`
	}
	if err := toml.Unmarshal(data, &rawConfig); err != nil {
		return sel, fmt.Errorf("failed to parse modules config: %w", err)
	}

	if rawConfig.Modules == nil {
		return sel, nil
	}
	if rawConfig.Modules.Encoders != nil {
		sel.Encoders = rawConfig.Modules.Encoders
	}
	if rawConfig.Modules.CSC != nil {
		sel.CSC = rawConfig.Modules.CSC
	}
	if rawConfig.Modules.Decoders != nil {
		sel.Decoders = rawConfig.Modules.Decoders
	}
	return sel, nil
}

// SaveSelection writes the selection back as a [modules] table, creating the
// config directory if needed. Other tables in the file are not preserved, so
// this is intended for dedicated module selection files.
func SaveSelection(configPath string, sel Selection) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := struct {
		Modules Selection `toml:"modules"`
	}{Modules: sel}

	data, err := toml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal modules config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write modules config: %w", err)
	}
	return nil
}
