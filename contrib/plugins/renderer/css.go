// css.go - CSS Pixel-Art Renderer (Blockies JSON-stdio Plugin Example)
//
// This is an example blockies renderer plugin written in Go. It demonstrates:
// - Plugin metadata via --plugin-info flag
// - Flag help via --flag-help flag
// - Reading the icon and plugin arguments from JSON stdin
// - Supporting dry-run mode
//
// The plugin prints a CSS rule that draws the icon with box-shadow, one
// shadow per cell. Icon colours are already valid CSS so they pass through
// unchanged.
//
// Build:
//   go build -o blockies-css css.go
//
// Plugin Protocol:
//   # Get plugin metadata
//   ./blockies-css --plugin-info
//
// Direct Usage:
//   echo '{"size":2,"scale":4,"grid":[[1,0],[2,1]],"color":"red","bg_color":"white","spot_color":"blue"}' | ./blockies-css
//
// Integration with blockies:
//   blockies plugins add ./blockies-css
//   blockies generate --seed alice -o css
//   blockies generate --seed alice -o css --plugin-args 'css={"selector":"#avatar"}'
//
// Plugin Arguments:
//   selector (string): CSS selector for the rule (default ".blockie")
//
// JSON-stdio output is stored by blockies as css-output.txt.
//
// Author: Blockies Contributors
// License: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// PluginInfo represents the metadata returned by --plugin-info.
type PluginInfo struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Version        string `json:"version"`
	Description    string `json:"description"`
	PluginProtocol string `json:"plugin_protocol"`
}

// FlagHelp represents one entry returned by --flag-help.
type FlagHelp struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

// Icon is the identicon blockies sends on stdin.
type Icon struct {
	Seed       string         `json:"seed"`
	Size       int            `json:"size"`
	Scale      int            `json:"scale"`
	Grid       [][]int        `json:"grid"`
	Color      string         `json:"color"`
	BgColor    string         `json:"bg_color"`
	SpotColor  string         `json:"spot_color"`
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
	DryRun     bool           `json:"dry_run"`
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--plugin-info":
			writeJSON(PluginInfo{
				Name:           "css",
				Type:           "renderer",
				Version:        "0.1.0",
				Description:    "Render identicons as a CSS box-shadow rule",
				PluginProtocol: "json-stdio",
			})
			os.Exit(0)
		case "--flag-help":
			writeJSON([]FlagHelp{{
				Name:        "selector",
				Type:        "string",
				Default:     ".blockie",
				Description: "CSS selector for the generated rule",
			}})
			os.Exit(0)
		}
	}

	var icon Icon
	if err := json.NewDecoder(os.Stdin).Decode(&icon); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding icon: %v\n", err)
		os.Exit(1)
	}

	// Dry-run prints nothing, so blockies writes no file.
	if icon.DryRun {
		os.Exit(0)
	}

	selector := ".blockie"
	if s, ok := icon.PluginArgs["selector"].(string); ok && s != "" {
		selector = s
	}

	fmt.Print(render(icon, selector))
}

// render builds the CSS rule. The element itself is one cell; every cell,
// including the first, is drawn by a shadow offset from the element.
func render(icon Icon, selector string) string {
	colors := []string{icon.BgColor, icon.Color, icon.SpotColor}

	var shadows []string
	for y, row := range icon.Grid {
		for x, cell := range row {
			// 0 is background, 1 colour, anything else spot.
			c := colors[2]
			if cell == 0 || cell == 1 {
				c = colors[cell]
			}
			shadows = append(shadows, fmt.Sprintf("%dpx %dpx 0 %s",
				(x+1)*icon.Scale, (y+1)*icon.Scale, c))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "/* blockies: %s */\n", icon.Seed)
	fmt.Fprintf(&sb, "%s {\n", selector)
	fmt.Fprintf(&sb, "  width: %dpx;\n", icon.Scale)
	fmt.Fprintf(&sb, "  height: %dpx;\n", icon.Scale)
	fmt.Fprintf(&sb, "  margin: 0 %dpx %dpx 0;\n", icon.Size*icon.Scale, icon.Size*icon.Scale)
	fmt.Fprintf(&sb, "  box-shadow:\n    %s;\n", strings.Join(shadows, ",\n    "))
	sb.WriteString("}\n")
	return sb.String()
}

func writeJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
