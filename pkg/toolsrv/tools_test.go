package toolsrv

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/miditoy/miditoy/pkg/library"
	"github.com/miditoy/miditoy/pkg/smf"
	"github.com/miditoy/miditoy/pkg/storage"
)

func newTestService(t *testing.T) (*Service, *Server) {
	t.Helper()
	lib, err := library.Open(library.Options{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { lib.Close() })
	store, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := &Service{Library: lib, Store: store}
	srv := &Server{}
	if err := svc.Register(srv); err != nil {
		t.Fatal(err)
	}
	return svc, srv
}

// call invokes the named tool through the JSON-RPC layer and fails the
// test on a protocol or tool error.
func call(t *testing.T, srv *Server, tool string, args any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  map[string]any{"name": tool, "arguments": args},
	})
	if err != nil {
		t.Fatal(err)
	}
	resp := srv.Handle(context.Background(), raw)
	if resp == nil {
		t.Fatalf("%s: nil response", tool)
	}
	if resp.Error != nil {
		t.Fatalf("%s: %s", tool, resp.Error.Message)
	}
	out, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatal(err)
	}
	var result map[string]any
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatal(err)
	}
	return result
}

func callErr(t *testing.T, srv *Server, tool string, args any) *responseError {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  map[string]any{"name": tool, "arguments": args},
	})
	if err != nil {
		t.Fatal(err)
	}
	resp := srv.Handle(context.Background(), raw)
	if resp == nil || resp.Error == nil {
		t.Fatalf("%s: expected error, got %+v", tool, resp)
	}
	return resp.Error
}

func TestServiceRegistersAllTools(t *testing.T) {
	_, srv := newTestService(t)
	want := []string{
		"add_chord_progression",
		"add_drum_pattern",
		"add_melody_to_midi",
		"analyze_midi_file",
		"compose_midi",
		"convert_midi_to_text",
		"create_midi_file",
		"generate_song",
		"list_chord_types",
		"list_midi_files",
		"list_scale_types",
		"play_midi_file",
	}
	tools := srv.Tools()
	if len(tools) != len(want) {
		t.Fatalf("got %d tools, want %d", len(tools), len(want))
	}
	for i, tool := range tools {
		if tool.Name != want[i] {
			t.Errorf("tools[%d] = %q, want %q", i, tool.Name, want[i])
		}
		if tool.Description == "" {
			t.Errorf("%s has no description", tool.Name)
		}
	}
}

func TestCreateAddAnalyzeFlow(t *testing.T) {
	svc, srv := newTestService(t)

	created := call(t, srv, "create_midi_file", map[string]any{
		"name": "demo", "bpm": 100, "timeSignature": "3/4",
	})
	if created["file"] != "demo.mid" {
		t.Fatalf("created = %+v", created)
	}
	if created["timeSignature"] != "3/4" {
		t.Fatalf("timeSignature = %v", created["timeSignature"])
	}

	added := call(t, srv, "add_melody_to_midi", map[string]any{
		"name": "demo", "key": "C", "scale": "major", "noteCount": 8,
	})
	if added["tracks"] != float64(1) {
		t.Fatalf("added = %+v", added)
	}

	call(t, srv, "add_drum_pattern", map[string]any{
		"name": "demo",
		"kick": []bool{true, false, false, false},
	})

	analysis := call(t, srv, "analyze_midi_file", map[string]any{"name": "demo"})
	if analysis["bpm"] != float64(100) {
		t.Fatalf("analysis = %+v", analysis)
	}

	files := call(t, srv, "list_midi_files", nil)
	list, _ := files["files"].([]any)
	if len(list) != 1 {
		t.Fatalf("files = %+v", files)
	}

	// The stored artifact must be a valid MIDI file.
	data, err := svc.readMIDI(context.Background(), "demo")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := smf.Decode(data); err != nil {
		t.Fatal(err)
	}
}

func TestCreateRequiresName(t *testing.T) {
	_, srv := newTestService(t)
	e := callErr(t, srv, "create_midi_file", map[string]any{"bpm": 120})
	if e.Code != codeToolError {
		t.Fatalf("code = %d", e.Code)
	}
}

func TestCreateTrimsSuffix(t *testing.T) {
	_, srv := newTestService(t)
	created := call(t, srv, "create_midi_file", map[string]any{"name": "tune.mid"})
	if created["name"] != "tune" || created["file"] != "tune.mid" {
		t.Fatalf("created = %+v", created)
	}
	if created["bpm"] != float64(120) {
		t.Fatalf("default bpm = %v", created["bpm"])
	}
}

func TestAddMelodyMissingComposition(t *testing.T) {
	_, srv := newTestService(t)
	callErr(t, srv, "add_melody_to_midi", map[string]any{
		"name": "ghost", "key": "C", "scale": "major",
	})
}

func TestComposeTool(t *testing.T) {
	_, srv := newTestService(t)
	result := call(t, srv, "compose_midi", map[string]any{
		"name": "direct",
		"composition": map[string]any{
			"bpm":           90,
			"timeSignature": map[string]any{"numerator": 4, "denominator": 4},
			"tracks": []any{
				map[string]any{
					"name":       "lead",
					"instrument": 0,
					"notes": []any{
						map[string]any{"pitch": 60, "velocity": 96, "duration": "4", "beat": 1},
					},
				},
			},
		},
	})
	if result["file"] != "direct.mid" || result["tracks"] != float64(1) {
		t.Fatalf("result = %+v", result)
	}
}

func TestGenerateSongTool(t *testing.T) {
	_, srv := newTestService(t)
	result := call(t, srv, "generate_song", map[string]any{"song": "beethoven_symphony5"})
	if result["file"] != "beethoven_symphony5.mid" {
		t.Fatalf("result = %+v", result)
	}

	e := callErr(t, srv, "generate_song", map[string]any{"song": "nope"})
	if e.Code != codeToolError {
		t.Fatalf("code = %d", e.Code)
	}
}

func TestTheoryTools(t *testing.T) {
	_, srv := newTestService(t)
	chords := call(t, srv, "list_chord_types", nil)
	if chords["chords"] == nil || chords["text"] == "" {
		t.Fatalf("chords = %+v", chords)
	}
	scales := call(t, srv, "list_scale_types", nil)
	if scales["scales"] == nil || scales["text"] == "" {
		t.Fatalf("scales = %+v", scales)
	}
}

func TestPlayToolUnconfigured(t *testing.T) {
	_, srv := newTestService(t)
	callErr(t, srv, "play_midi_file", map[string]any{"name": "demo"})
}
