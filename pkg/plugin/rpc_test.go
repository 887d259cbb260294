package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/rpc"
	"testing"
)

// Mock implementation for testing.
type mockRendererPlugin struct {
	files     map[string][]byte
	metadata  PluginInfo
	flagHelp  []FlagHelp
	renderErr error
	lastIcon  IconData
}

func (m *mockRendererPlugin) Render(_ context.Context, icon IconData) (map[string][]byte, error) {
	m.lastIcon = icon
	if m.renderErr != nil {
		return nil, m.renderErr
	}
	return m.files, nil
}

func (m *mockRendererPlugin) GetMetadata() PluginInfo {
	return m.metadata
}

func (m *mockRendererPlugin) GetFlagHelp() []FlagHelp {
	return m.flagHelp
}

func testIcon() IconData {
	return IconData{
		Seed:      "0x1234567890abcdef",
		Size:      2,
		Scale:     4,
		Grid:      [][]int{{1, 1}, {0, 2}},
		Color:     "hsl(86,98%,66%)",
		BgColor:   "white",
		SpotColor: "#123456",
	}
}

// connect serves impl over an in-memory connection and returns a client for it.
func connect(t *testing.T, impl RendererPlugin) *RendererPluginRPCClient {
	t.Helper()

	serverConn, clientConn := net.Pipe()
	server := rpc.NewServer()
	if err := server.RegisterName("Plugin", &RendererPluginRPCServer{Impl: impl}); err != nil {
		t.Fatalf("RegisterName() error = %v", err)
	}
	go server.ServeConn(serverConn)

	client := rpc.NewClient(clientConn)
	t.Cleanup(func() {
		_ = client.Close()
	})

	return &RendererPluginRPCClient{client: client}
}

// TestRendererPluginRPC tests the renderer plugin RPC wrapper.
func TestRendererPluginRPC(t *testing.T) {
	mock := &mockRendererPlugin{
		metadata: PluginInfo{
			Name:            "test-renderer",
			Type:            "renderer",
			Version:         "1.0.0",
			ProtocolVersion: ProtocolVersion,
			Description:     "Test renderer plugin",
			PluginProtocol:  string(PluginTypeGoPlugin),
		},
	}

	rpcPlugin := &RendererPluginRPC{Impl: mock}

	t.Run("Server", func(t *testing.T) {
		server, err := rpcPlugin.Server(nil)
		if err != nil {
			t.Fatalf("Server() error = %v", err)
		}

		rpcServer, ok := server.(*RendererPluginRPCServer)
		if !ok {
			t.Fatal("Server() returned wrong type")
		}
		if rpcServer.Impl != mock {
			t.Fatal("Server() impl not set correctly")
		}
	})

	t.Run("Client", func(t *testing.T) {
		client, err := rpcPlugin.Client(nil, nil)
		if err != nil {
			t.Fatalf("Client() error = %v", err)
		}
		if _, ok := client.(*RendererPluginRPCClient); !ok {
			t.Fatal("Client() returned wrong type")
		}
	})
}

// TestRendererPluginRPCServer tests the RPC server methods directly.
func TestRendererPluginRPCServer(t *testing.T) {
	mock := &mockRendererPlugin{
		files:    map[string][]byte{"icon.txt": []byte("##\n.*\n")},
		metadata: PluginInfo{Name: "test"},
		flagHelp: []FlagHelp{{Name: "charset", Type: "string"}},
	}

	server := &RendererPluginRPCServer{Impl: mock}

	t.Run("Render", func(t *testing.T) {
		var resp map[string][]byte
		if err := server.Render(testIcon(), &resp); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if _, ok := resp["icon.txt"]; !ok {
			t.Error("Render() missing expected file 'icon.txt'")
		}
		if mock.lastIcon.Seed != "0x1234567890abcdef" {
			t.Errorf("Render() passed seed %q", mock.lastIcon.Seed)
		}
	})

	t.Run("GetMetadata", func(t *testing.T) {
		var resp PluginInfo
		if err := server.GetMetadata(nil, &resp); err != nil {
			t.Fatalf("GetMetadata() error = %v", err)
		}
		if resp.Name != "test" {
			t.Errorf("GetMetadata() name = %q, want %q", resp.Name, "test")
		}
	})

	t.Run("GetFlagHelp", func(t *testing.T) {
		var resp []FlagHelp
		if err := server.GetFlagHelp(nil, &resp); err != nil {
			t.Fatalf("GetFlagHelp() error = %v", err)
		}
		if len(resp) != 1 || resp[0].Name != "charset" {
			t.Errorf("GetFlagHelp() = %+v, want one charset flag", resp)
		}
	})
}

// TestRendererPluginRoundTrip exercises the client against a live RPC server.
func TestRendererPluginRoundTrip(t *testing.T) {
	mock := &mockRendererPlugin{
		files:    map[string][]byte{"icon.txt": []byte("##\n.*\n")},
		metadata: PluginInfo{Name: "ascii", Version: "0.1.0"},
		flagHelp: []FlagHelp{{Name: "charset"}},
	}
	client := connect(t, mock)

	files, err := client.Render(context.Background(), testIcon())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(files["icon.txt"]) != "##\n.*\n" {
		t.Errorf("Render() files = %v", files)
	}

	sent := mock.lastIcon
	want := testIcon()
	if sent.Seed != want.Seed || sent.Color != want.Color || sent.BgColor != want.BgColor || sent.SpotColor != want.SpotColor {
		t.Errorf("server received %+v, want %+v", sent, want)
	}
	if len(sent.Grid) != 2 || sent.Grid[1][1] != 2 {
		t.Errorf("server received grid %v", sent.Grid)
	}

	info, err := client.GetMetadata()
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if info.Name != "ascii" {
		t.Errorf("GetMetadata() name = %q, want ascii", info.Name)
	}

	if help := client.GetFlagHelp(); len(help) != 1 {
		t.Errorf("GetFlagHelp() = %+v, want one flag", help)
	}
}

// TestRendererPluginRemoteError tests that plugin errors surface as RPCError.
func TestRendererPluginRemoteError(t *testing.T) {
	client := connect(t, &mockRendererPlugin{renderErr: errors.New("unsupported size")})

	_, err := client.Render(context.Background(), testIcon())
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("Render() error = %v (%T), want *RPCError", err, err)
	}
	if rpcErr.Message != "unsupported size" {
		t.Errorf("RPCError.Message = %q, want %q", rpcErr.Message, "unsupported size")
	}
}

// TestRPCError tests the RPCError type.
func TestRPCError(t *testing.T) {
	err := &RPCError{Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("RPCError.Error() = %q, want %q", err.Error(), "test error")
	}

	plain := errors.New("connection reset")
	if got := remoteError(plain); got != plain {
		t.Errorf("remoteError() = %v, want transport error unchanged", got)
	}
}

// TestWriteInfo tests the --plugin-info encoding.
func TestWriteInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInfo(&buf, PluginInfo{Name: "ascii", Version: "1.2.3"}); err != nil {
		t.Fatalf("WriteInfo() error = %v", err)
	}

	var info PluginInfo
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if info.ProtocolVersion != ProtocolVersion {
		t.Errorf("ProtocolVersion = %q, want %q", info.ProtocolVersion, ProtocolVersion)
	}
	if info.PluginProtocol != string(PluginTypeGoPlugin) {
		t.Errorf("PluginProtocol = %q, want go-plugin", info.PluginProtocol)
	}
	if info.Type != "renderer" {
		t.Errorf("Type = %q, want renderer", info.Type)
	}

	buf.Reset()
	if err := WriteInfo(&buf, PluginInfo{Name: "x", PluginProtocol: string(PluginTypeJSON)}); err != nil {
		t.Fatalf("WriteInfo() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"plugin_protocol": "json-stdio"`)) {
		t.Errorf("WriteInfo() overwrote plugin protocol: %s", buf.String())
	}
}

// TestPluginMap tests the go-plugin plugin set.
func TestPluginMap(t *testing.T) {
	ps := PluginMap(nil)
	p, ok := ps[PluginName]
	if !ok {
		t.Fatalf("PluginMap() missing %q", PluginName)
	}
	if _, ok := p.(*RendererPluginRPC); !ok {
		t.Errorf("PluginMap()[%q] = %T, want *RendererPluginRPC", PluginName, p)
	}
}

// TestIconDataJSON tests the wire field names used by JSON-stdio plugins.
func TestIconDataJSON(t *testing.T) {
	data, err := json.Marshal(testIcon())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, field := range []string{`"seed"`, `"size"`, `"scale"`, `"grid"`, `"color"`, `"bg_color"`, `"spot_color"`} {
		if !bytes.Contains(data, []byte(field)) {
			t.Errorf("JSON missing field %s: %s", field, data)
		}
	}
	if bytes.Contains(data, []byte("plugin_args")) {
		t.Errorf("JSON contains empty plugin_args: %s", data)
	}

	if got := testIcon().Width(); got != 8 {
		t.Errorf("Width() = %d, want 8", got)
	}
}
