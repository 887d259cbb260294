// Package executor provides a unified interface for executing renderer plugins
// regardless of their underlying protocol (go-plugin RPC or JSON-stdio).
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/blockies/internal/plugin/protocol"
	"github.com/jmylchreest/blockies/pkg/plugin"
)

// FlagHelpFlag asks a JSON-stdio plugin to print its flag help as JSON.
const FlagHelpFlag = "--flag-help"

// PluginExecutor provides a unified interface for executing plugins.
type PluginExecutor struct {
	path         string
	protocolType protocol.PluginType
	info         protocol.PluginInfo
	runner       ProcessRunner
	client       *goplugin.Client
	rpcClient    *plugin.RendererPluginRPCClient
	verbose      bool
}

// New creates a new PluginExecutor by detecting the plugin's protocol.
func New(pluginPath string) (*PluginExecutor, error) {
	return NewWithVerbose(pluginPath, false)
}

// NewWithVerbose creates a new PluginExecutor with verbose logging control.
func NewWithVerbose(pluginPath string, verbose bool) (*PluginExecutor, error) {
	return NewWithVerboseAndRunner(pluginPath, verbose, NewRealProcessRunner())
}

// NewWithVerboseAndRunner creates a PluginExecutor that launches JSON-stdio
// processes, including the --plugin-info query, through runner.
func NewWithVerboseAndRunner(pluginPath string, verbose bool, runner ProcessRunner) (*PluginExecutor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), protocol.DetectTimeout)
	defer cancel()

	stdout, stderr, err := runner.Run(ctx, pluginPath, []string{plugin.PluginInfoFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w%s", err, stderrSuffix(stderr))
	}

	result, err := protocol.ParseInfo(stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	return &PluginExecutor{
		path:         pluginPath,
		protocolType: result.Type,
		info:         result.PluginInfo,
		runner:       runner,
		verbose:      verbose,
	}, nil
}

// Info returns the metadata the plugin reported during detection.
func (e *PluginExecutor) Info() protocol.PluginInfo {
	return e.info
}

// ProtocolType returns the detected plugin protocol.
func (e *PluginExecutor) ProtocolType() protocol.PluginType {
	return e.protocolType
}

// Render runs the plugin for one icon and returns the generated files.
func (e *PluginExecutor) Render(ctx context.Context, icon protocol.IconData) (map[string][]byte, error) {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		return e.renderGoPlugin(ctx, icon)
	case protocol.PluginTypeJSON:
		return e.renderJSON(ctx, icon)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// GetFlagHelp returns the plugin's flag help. Plugins that do not provide
// any return an empty list.
func (e *PluginExecutor) GetFlagHelp(ctx context.Context) ([]protocol.FlagHelp, error) {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		client, err := e.getRPCClient()
		if err != nil {
			return nil, err
		}
		return client.GetFlagHelp(), nil
	case protocol.PluginTypeJSON:
		return e.flagHelpJSON(ctx), nil
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// Close cleans up any resources held by the executor.
func (e *PluginExecutor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

// --- Go-Plugin RPC implementation ---

func (e *PluginExecutor) logger() hclog.Logger {
	if e.verbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "plugin",
			Output: os.Stderr,
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "plugin",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

func (e *PluginExecutor) getRPCClient() (*plugin.RendererPluginRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	// #nosec G204 -- path comes from the user's plugin configuration
	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  protocol.Handshake,
		Plugins:          plugin.PluginMap(nil),
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger(),
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.PluginName)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(*plugin.RendererPluginRPCClient)
	if !ok {
		e.Close()
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	e.rpcClient = client

	return client, nil
}

func (e *PluginExecutor) renderGoPlugin(ctx context.Context, icon protocol.IconData) (map[string][]byte, error) {
	client, err := e.getRPCClient()
	if err != nil {
		return nil, err
	}

	return client.Render(ctx, icon)
}

// --- JSON-stdio implementation ---

func (e *PluginExecutor) renderJSON(ctx context.Context, icon protocol.IconData) (map[string][]byte, error) {
	iconJSON, err := json.Marshal(icon)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal icon: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(iconJSON))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("plugin execution cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("plugin execution failed: %w%s", err, stderrSuffix(stderr))
	}

	// Stdout becomes a single virtual file.
	result := make(map[string][]byte)
	if len(stdout) > 0 {
		result[e.outputFileName()] = stdout
	}

	return result, nil
}

func (e *PluginExecutor) flagHelpJSON(ctx context.Context) []protocol.FlagHelp {
	stdout, _, err := e.runner.Run(ctx, e.path, []string{FlagHelpFlag}, nil)
	if err != nil {
		return []protocol.FlagHelp{}
	}

	var help []protocol.FlagHelp
	if err := json.Unmarshal(stdout, &help); err != nil {
		return []protocol.FlagHelp{}
	}
	return help
}

// outputFileName names the file JSON-stdio output is stored under.
func (e *PluginExecutor) outputFileName() string {
	name := e.info.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(e.path), filepath.Ext(e.path))
	}
	return name + "-output.txt"
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	return "\nStderr: " + msg
}
