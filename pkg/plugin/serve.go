package plugin

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-plugin"
)

// PluginInfoFlag is the argument blockies passes to discover a plugin's metadata.
const PluginInfoFlag = "--plugin-info"

// Serve runs impl as a go-plugin renderer. When the process was started with
// --plugin-info it prints the metadata as JSON and exits instead.
func Serve(impl RendererPlugin) {
	if len(os.Args) > 1 && os.Args[1] == PluginInfoFlag {
		if err := WriteInfo(os.Stdout, impl.GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}

// PluginMap returns the go-plugin plugin set for a renderer. Hosts pass a nil impl.
func PluginMap(impl RendererPlugin) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &RendererPluginRPC{Impl: impl},
	}
}

// WriteInfo writes plugin metadata in the --plugin-info format. A missing
// protocol version or plugin protocol is filled in with this package's values.
func WriteInfo(w io.Writer, info PluginInfo) error {
	if info.ProtocolVersion == "" {
		info.ProtocolVersion = ProtocolVersion
	}
	if info.PluginProtocol == "" {
		info.PluginProtocol = string(PluginTypeGoPlugin)
	}
	if info.Type == "" {
		info.Type = "renderer"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}
