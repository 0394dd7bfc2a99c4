// Package config provides the project configuration shared by every casm
// entry point. It is decoupled from CLI concerns; the layered loader lives in
// internal/cli/config.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/casm/pkg/diag"
)

// ProjectConfig holds the settings a casm.yaml may carry.
type ProjectConfig struct {
	Output          string `koanf:"output"`           // auto, text, table, json, yaml, dump
	Color           string `koanf:"color"`            // auto, always, never
	TabWidth        int    `koanf:"tab_width"`        // columns per tab stop in rendered snippets
	IncludeComments bool   `koanf:"include_comments"` // keep comment tokens in listings
}

// Validate checks that enumerated settings hold known values.
func (c *ProjectConfig) Validate() error {
	if !slices.Contains(OutputModes, strings.ToLower(c.Output)) {
		return fmt.Errorf("invalid output %q: must be one of %s", c.Output, strings.Join(OutputModes, ", "))
	}
	if !slices.Contains(ColorModes, strings.ToLower(c.Color)) {
		return fmt.Errorf("invalid color %q: must be one of %s", c.Color, strings.Join(ColorModes, ", "))
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("invalid tab_width %d: must be at least 1", c.TabWidth)
	}
	return nil
}

// RenderOptions converts the settings into diagnostic renderer options.
func (c *ProjectConfig) RenderOptions() diag.Options {
	return diag.Options{
		Color:    diag.ColorMode(strings.ToLower(c.Color)),
		TabWidth: c.TabWidth,
	}
}
