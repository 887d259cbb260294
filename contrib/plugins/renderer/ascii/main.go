// ascii - Blockies Renderer Plugin for Plain-Text Icons
//
// DEMONSTRATION GO-PLUGIN: This plugin showcases the go-plugin protocol.
// The process stays alive for the whole run, so batch rendering reuses one
// RPC connection instead of spawning a process per icon.
//
// Functionality:
// - Renders the icon grid as text, one character per cell state
// - Doubles each cell horizontally so icons look square in a terminal
// - Accepts a custom charset via plugin args
//
// Build:
//   go build -o blockies-ascii .
//
// Usage:
//   blockies plugins add ./blockies-ascii --name ascii
//   blockies generate --seed alice -o ascii
//   blockies generate --seed alice -o ascii --plugin-args 'ascii={"charset":" @+"}'
//
// Plugin Arguments:
//   charset (string): three characters for background, colour and spot (default ".#*")
//   repeat  (int):    times each cell is repeated horizontally (default 2)
//
// Author: Blockies Contributors
// License: MIT

package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/blockies/pkg/plugin"
)

const (
	defaultCharset = ".#*"
	defaultRepeat  = 2
)

// ASCIIPlugin renders identicons as plain text.
type ASCIIPlugin struct{}

// Render returns the icon as a single text file.
func (p *ASCIIPlugin) Render(_ context.Context, icon plugin.IconData) (map[string][]byte, error) {
	charset, repeat, err := options(icon.PluginArgs)
	if err != nil {
		return nil, err
	}

	if icon.DryRun {
		return map[string][]byte{}, nil
	}

	var sb strings.Builder
	for _, row := range icon.Grid {
		for _, cell := range row {
			sb.WriteString(strings.Repeat(string(charset[cellIndex(cell)]), repeat))
		}
		sb.WriteByte('\n')
	}

	return map[string][]byte{"icon.txt": []byte(sb.String())}, nil
}

// cellIndex maps a grid value to its charset position: 0 background,
// 1 colour, anything else spot.
func cellIndex(cell int) int {
	switch cell {
	case 0, 1:
		return cell
	default:
		return 2
	}
}

// GetMetadata returns plugin metadata.
func (p *ASCIIPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "ascii",
		Type:        "renderer",
		Version:     "0.1.0",
		Description: "Render identicons as plain text",
	}
}

// GetFlagHelp returns help for the plugin args this plugin understands.
func (p *ASCIIPlugin) GetFlagHelp() []plugin.FlagHelp {
	return []plugin.FlagHelp{
		{
			Name:        "charset",
			Type:        "string",
			Default:     defaultCharset,
			Description: "Characters for background, colour and spot cells",
		},
		{
			Name:        "repeat",
			Type:        "int",
			Default:     fmt.Sprint(defaultRepeat),
			Description: "Times each cell is repeated horizontally",
		},
	}
}

// options reads plugin args. JSON numbers arrive as float64.
func options(args map[string]any) ([]rune, int, error) {
	charset := []rune(defaultCharset)
	repeat := defaultRepeat

	if v, ok := args["charset"]; ok {
		s, ok := v.(string)
		if !ok || utf8.RuneCountInString(s) != 3 {
			return nil, 0, fmt.Errorf("charset must be a string of exactly 3 characters")
		}
		charset = []rune(s)
	}

	if v, ok := args["repeat"]; ok {
		n, ok := v.(float64)
		if !ok || n < 1 || n != float64(int(n)) {
			return nil, 0, fmt.Errorf("repeat must be a positive integer")
		}
		repeat = int(n)
	}

	return charset, repeat, nil
}

func main() {
	plugin.Serve(&ASCIIPlugin{})
}
