package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"workouttimer/internal/core/intervals"
	"workouttimer/internal/core/model"
	"workouttimer/internal/testing/faketick"
)

func newEngine(out io.Writer) (*intervals.Engine, *faketick.Source, *Sink) {
	ticks := faketick.New()
	sink := NewSink(out, true)
	engine := intervals.New(model.IntervalConfig{WorkSeconds: 3, RestSeconds: 2}, intervals.Options{
		Ticks: ticks,
		Sink:  sink,
	})
	return engine, ticks, sink
}

func TestSink_RendersStatusLine(t *testing.T) {
	var out bytes.Buffer
	engine, ticks, _ := newEngine(&out)
	engine.Refresh()
	engine.Start()
	ticks.Tick(4)

	text := out.String()
	if !strings.Contains(text, "\r[Work time] 00:03  cycles: 0 ") {
		t.Errorf("missing initial line in %q", text)
	}
	if !strings.Contains(text, "\a") {
		t.Errorf("missing bell in %q", text)
	}
	if !strings.HasSuffix(text, "\r[Rest time] 00:02  cycles: 1 ") {
		t.Errorf("last line = %q", text[strings.LastIndex(text, "\r"):])
	}
}

func TestSink_BellDisabled(t *testing.T) {
	var out bytes.Buffer
	sink := NewSink(&out, true)
	sink.SetBell(false)
	sink.OnPhaseAlert()
	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing", out.String())
	}
}

func TestExecute(t *testing.T) {
	var out bytes.Buffer
	engine, ticks, _ := newEngine(io.Discard)

	if Execute("work 10", &out, engine) {
		t.Fatal("work should not quit")
	}
	if got := engine.Snapshot().Remaining; got != 10 {
		t.Errorf("Remaining = %d, want 10", got)
	}

	Execute("rest 4", &out, engine)
	Execute("START", &out, engine)
	ticks.Tick(1)
	state := engine.Snapshot()
	if !state.Running || state.RestSeconds != 4 || state.Remaining != 9 {
		t.Errorf("state = %+v", state)
	}

	Execute("r", &out, engine)
	if engine.Snapshot().Running {
		t.Error("still running after reset")
	}

	if !Execute("q", &out, engine) {
		t.Error("q should quit")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestExecute_RejectedInput(t *testing.T) {
	var out bytes.Buffer
	engine, _, _ := newEngine(io.Discard)

	Execute("w -10", &out, engine)
	Execute("rest", &out, engine)
	Execute("jump", &out, engine)
	Execute("   ", &out, engine)

	if got := engine.Snapshot().WorkSeconds; got != 3 {
		t.Errorf("WorkSeconds = %d, want 3", got)
	}
	text := out.String()
	for _, want := range []string{`work duration unchanged ("-10" rejected)`, "usage: rest SECONDS", `unknown command "jump"`} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRun_StopsOnQuitAndEOF(t *testing.T) {
	engine, _, _ := newEngine(io.Discard)

	err := Run(context.Background(), strings.NewReader("s\nq\nr\n"), io.Discard, engine)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !engine.Snapshot().Running {
		t.Error("commands after quit should not run")
	}

	if err := Run(context.Background(), strings.NewReader("r\n"), io.Discard, engine); err != nil {
		t.Fatalf("Run() at EOF error: %v", err)
	}
	if engine.Snapshot().Running {
		t.Error("reset before EOF not applied")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	engine, _, _ := newEngine(io.Discard)
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, reader, io.Discard, engine)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
