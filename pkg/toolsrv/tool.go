// Package toolsrv exposes the composition toolkit to remote callers as a
// set of schema-described tools over JSON-RPC 2.0, speaking newline
// delimited JSON on stdio or WebSocket.
package toolsrv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

// Tool is one callable operation: a name, a human-readable description and
// a JSON-schema-described argument type.
type Tool struct {
	Name        string
	Description string
	Argument    *jsonschema.Schema

	invoke func(ctx context.Context, args json.RawMessage) (any, error)
}

// Invoke decodes args against the tool's argument type and runs it.
func (t *Tool) Invoke(ctx context.Context, args json.RawMessage) (any, error) {
	return t.invoke(ctx, args)
}

// NewTool builds a Tool whose argument schema is derived from ArgType.
// Tool arguments frequently come from LLMs; malformed JSON is run through
// jsonrepair before being rejected.
func NewTool[ArgType any](name, description string, fn func(ctx context.Context, arg ArgType) (any, error)) (*Tool, error) {
	arg, err := jsonschema.For[ArgType](&jsonschema.ForOptions{})
	if err != nil {
		return nil, fmt.Errorf("toolsrv: schema for %s: %w", name, err)
	}
	return &Tool{
		Name:        name,
		Description: description,
		Argument:    arg,
		invoke: func(ctx context.Context, args json.RawMessage) (any, error) {
			var v ArgType
			if len(args) > 0 {
				if err := unmarshalJSON(args, &v); err != nil {
					return nil, fmt.Errorf("toolsrv: unmarshal %s arguments: %w", name, err)
				}
			}
			return fn(ctx, v)
		},
	}, nil
}

// MustNewTool is NewTool panicking on error; tool definitions are static.
func MustNewTool[ArgType any](name, description string, fn func(ctx context.Context, arg ArgType) (any, error)) *Tool {
	t, err := NewTool(name, description, fn)
	if err != nil {
		panic(err)
	}
	return t
}

// unmarshalJSON unmarshals JSON data into v, repairing malformed JSON on a
// syntax error before retrying.
func unmarshalJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}
