package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/jmylchreest/blockies/pkg/plugin"
)

// DetectTimeout bounds the --plugin-info query.
const DetectTimeout = 5 * time.Second

// DetectorResult contains information about a detected plugin protocol.
type DetectorResult struct {
	// Type indicates which protocol the plugin uses.
	Type PluginType

	// SupportsGoPlugin indicates if the plugin binary has go-plugin support.
	SupportsGoPlugin bool

	// PluginInfo contains metadata from --plugin-info.
	PluginInfo PluginInfo
}

// DetectProtocol detects which protocol a plugin uses by querying it.
func DetectProtocol(pluginPath string) (*DetectorResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DetectTimeout)
	defer cancel()

	// #nosec G204 -- pluginPath comes from the user's plugin configuration
	output, err := exec.CommandContext(ctx, pluginPath, plugin.PluginInfoFlag).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin: %w", err)
	}

	return ParseInfo(output)
}

// ParseInfo interprets --plugin-info output and checks protocol compatibility.
func ParseInfo(output []byte) (*DetectorResult, error) {
	var info PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	result := &DetectorResult{
		PluginInfo: info,
	}

	switch PluginType(info.PluginProtocol) {
	case PluginTypeGoPlugin:
		result.Type = PluginTypeGoPlugin
		result.SupportsGoPlugin = true
	case PluginTypeJSON, "":
		// Empty defaults to json-stdio.
		result.Type = PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	if info.ProtocolVersion != "" {
		if _, err := IsCompatible(info.ProtocolVersion); err != nil {
			return nil, fmt.Errorf("plugin %q: %w", info.Name, err)
		}
	}

	return result, nil
}
