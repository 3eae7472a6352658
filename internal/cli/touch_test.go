package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"splitkit/internal/instance"
	"splitkit/internal/logging"
	"splitkit/internal/touch"
)

// touchBridge starts a real bridge and returns a Delegate pointed at it.
func touchBridge(t *testing.T) (*Delegate, chan any, *int) {
	t.Helper()
	lm := logging.NewTestLogManager(100)
	t.Cleanup(func() { lm.Close() })

	msgs := make(chan any, 64)
	srv := touch.New(touch.Config{Bind: "127.0.0.1"}, func(msg any) { msgs <- msg }, nil, lm)
	ln, err := srv.Listen()
	if err != nil {
		t.Fatalf("Listen() failed: %v", err)
	}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	code := -1
	d := &Delegate{
		ExitFunc: func(c int) { code = c },
		Stderr:   &bytes.Buffer{},
		Discover: func(string) (instance.Endpoint, error) {
			return instance.Endpoint{Addr: srv.Addr()}, nil
		},
	}
	return d, msgs, &code
}

// drain collects pointer events until the connection reports closed.
func drain(t *testing.T, msgs chan any) []touch.PointerEvent {
	t.Helper()
	var events []touch.PointerEvent
	for {
		select {
		case msg := <-msgs:
			switch m := msg.(type) {
			case touch.PointerMsg:
				events = append(events, m.Event)
			case touch.ConnMsg:
				if !m.Connected {
					return events
				}
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, got %d events", len(events))
			return nil
		}
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    [2]float64
		wantErr bool
	}{
		{in: "10,5", want: [2]float64{10, 5}},
		{in: "0.25, 0.5", want: [2]float64{0.25, 0.5}},
		{in: "10", wantErr: true},
		{in: "x,5", wantErr: true},
		{in: "5,", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePoint(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadEvents(t *testing.T) {
	input := `# a tap
{"phase":"down","x":1,"y":2}

{"phase":"up","x":1,"y":2}
`
	events, err := readEvents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readEvents() error: %v", err)
	}
	if len(events) != 2 || events[0].Phase != touch.PhaseDown || events[1].Phase != touch.PhaseUp {
		t.Errorf("events = %+v", events)
	}

	if _, err := readEvents(strings.NewReader(`{"phase":"hover"}`)); err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("invalid phase error = %v", err)
	}
	if _, err := readEvents(strings.NewReader("{not json")); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestTouchDrag_SendsStroke(t *testing.T) {
	d, msgs, code := touchBridge(t)

	err := runTouchDrag(d, []string{"0.5,0.5", "0.25,0.5", "--steps", "2", "--interval", "0", "--normalized"})
	if err != nil {
		t.Fatalf("drag returned error: %v", err)
	}
	if *code != -1 {
		t.Fatalf("exit code = %d, stderr %q", *code, d.Stderr.(*bytes.Buffer).String())
	}

	events := drain(t, msgs)
	want := []touch.Phase{touch.PhaseDown, touch.PhaseMove, touch.PhaseMove, touch.PhaseUp}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, ev := range events {
		if ev.Phase != want[i] || !ev.Normalized {
			t.Errorf("event %d = %+v, want normalized %s", i, ev, want[i])
		}
	}
	if last := events[len(events)-1]; last.X != 0.25 {
		t.Errorf("last x = %v, want 0.25", last.X)
	}
}

func TestTouchDrag_RejectsBadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing end point", []string{"1,1"}},
		{"bad point", []string{"1;1", "2,2"}},
		{"normalized out of range", []string{"0,0", "2,0", "--normalized"}},
		{"unknown flag", []string{"1,1", "2,2", "--pressure"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Delegate{Discover: func(string) (instance.Endpoint, error) {
				t.Fatal("should fail before discovery")
				return instance.Endpoint{}, nil
			}}
			if err := runTouchDrag(d, tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestTouchReplay_FromFileAndStdin(t *testing.T) {
	lines := `{"phase":"down","x":50,"y":10}
{"phase":"move","x":40,"y":10}
{"phase":"up","x":40,"y":10}
`
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0600); err != nil {
		t.Fatal(err)
	}

	for _, src := range []string{path, "-"} {
		t.Run(src, func(t *testing.T) {
			d, msgs, code := touchBridge(t)
			if err := runTouchReplay(d, []string{src}, strings.NewReader(lines)); err != nil {
				t.Fatalf("replay returned error: %v", err)
			}
			if *code != -1 {
				t.Fatalf("exit code = %d", *code)
			}
			if events := drain(t, msgs); len(events) != 3 {
				t.Errorf("got %d events, want 3", len(events))
			}
		})
	}
}

func TestTouchReplay_Empty(t *testing.T) {
	d := &Delegate{}
	if err := runTouchReplay(d, []string{"-"}, strings.NewReader("\n# nothing\n")); err == nil {
		t.Error("replaying nothing should fail")
	}
	if err := runTouchReplay(d, nil, strings.NewReader("")); err == nil {
		t.Error("missing source should fail")
	}
}
