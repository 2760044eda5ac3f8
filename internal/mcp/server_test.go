package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagnav/internal/logging"
)

func newTestServer() *Server {
	s := NewServer("tagnav", "test", logging.Nop())
	s.RegisterTool(Tool{
		Name:        "echo",
		Description: "Echo the text argument",
		InputSchema: InputSchema{
			Type:       "object",
			Properties: map[string]Property{"text": {Type: "string"}},
			Required:   []string{"text"},
		},
	}, func(_ context.Context, args map[string]any) (*ToolsCallResult, error) {
		text, _ := args["text"].(string)
		if text == "" {
			return nil, errors.New("text is required")
		}
		return TextResult(text), nil
	})
	return s
}

// roundTrip serves input and decodes every response line.
func roundTrip(t *testing.T, s *Server, input string) []map[string]any {
	t.Helper()
	var out strings.Builder
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(input), &out))

	var responses []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		var resp map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServeInitializeAndList(t *testing.T) {
	responses := roundTrip(t, newTestServer(), ""+
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`+"\n"+
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`+"\n"+
		"\n"+
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`+"\n")
	require.Len(t, responses, 2)

	initResult := responses[0]["result"].(map[string]any)
	assert.Equal(t, ProtocolVersion, initResult["protocolVersion"])
	assert.Equal(t, "tagnav", initResult["serverInfo"].(map[string]any)["name"])

	tools := responses[1]["result"].(map[string]any)["tools"].([]any)
	require.Len(t, tools, 1)
	assert.Equal(t, "echo", tools[0].(map[string]any)["name"])
}

func TestServeToolsCall(t *testing.T) {
	responses := roundTrip(t, newTestServer(), ""+
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hi"}}}`+"\n"+
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo","arguments":{}}}`+"\n"+
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"nope"}}`)
	require.Len(t, responses, 3)

	ok := responses[0]["result"].(map[string]any)
	assert.Equal(t, "hi", ok["content"].([]any)[0].(map[string]any)["text"])
	assert.Nil(t, ok["isError"])

	failed := responses[1]["result"].(map[string]any)
	assert.Equal(t, true, failed["isError"])
	assert.Equal(t, "text is required", failed["content"].([]any)[0].(map[string]any)["text"])

	missing := responses[2]["error"].(map[string]any)
	assert.Equal(t, float64(MethodNotFound), missing["code"])
}

func TestServeErrors(t *testing.T) {
	responses := roundTrip(t, newTestServer(), ""+
		"not json\n"+
		`{"jsonrpc":"2.0","id":7}`+"\n"+
		`{"jsonrpc":"2.0","id":8,"method":"resources/list"}`+"\n"+
		`{"jsonrpc":"2.0","id":9,"method":"ping"}`+"\r\n")
	require.Len(t, responses, 4)

	assert.Equal(t, float64(ParseError), responses[0]["error"].(map[string]any)["code"])
	assert.Equal(t, float64(InvalidRequest), responses[1]["error"].(map[string]any)["code"])
	assert.Equal(t, float64(MethodNotFound), responses[2]["error"].(map[string]any)["code"])
	assert.Equal(t, float64(9), responses[3]["id"])
	assert.NotNil(t, responses[3]["result"])
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	err := newTestServer().Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestRegisterToolReplaces(t *testing.T) {
	s := newTestServer()
	s.RegisterTool(Tool{Name: "echo", Description: "again"}, func(context.Context, map[string]any) (*ToolsCallResult, error) {
		return TextResult("replaced"), nil
	})

	require.Len(t, s.Tools(), 1)
	responses := roundTrip(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo"}}`+"\n")
	require.Len(t, responses, 1)
	assert.Equal(t, "replaced", responses[0]["result"].(map[string]any)["content"].([]any)[0].(map[string]any)["text"])
}
