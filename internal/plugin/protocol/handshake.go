// Package protocol defines the plugin protocol version and compatibility checking.
package protocol

import (
	"github.com/jmylchreest/blockies/pkg/plugin"
)

// Handshake is the handshake configuration for go-plugin protocol.
//
// NOTE: go-plugin's ProtocolVersion is a single uint that must match exactly,
// so only the major version of ProtocolVersion takes part in the handshake.
// The full semantic version check happens separately via the --plugin-info
// query and IsCompatible().
var Handshake = plugin.Handshake

// PluginType is an alias to the public plugin.PluginType.
type PluginType = plugin.PluginType

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin = plugin.PluginTypeGoPlugin

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON = plugin.PluginTypeJSON
)

// IconData is an alias to the public plugin.IconData type.
type IconData = plugin.IconData

// PluginInfo is a type alias to the public plugin.PluginInfo type.
// External plugins should import github.com/jmylchreest/blockies/pkg/plugin directly.
type PluginInfo = plugin.PluginInfo

// FlagHelp is an alias to the public plugin.FlagHelp type.
type FlagHelp = plugin.FlagHelp

// PluginName is the plugin kind blockies dispenses and accepts.
const PluginName = plugin.PluginName
