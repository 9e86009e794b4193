package dispatcher

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}

	return d, logger
}

func TestDispatcher_SyncHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var got Event
	d.Register(":TEST:", func(e Event) (any, error) {
		got = e
		return "result", nil
	})

	result, err := d.Dispatch(Event{Command: ":TEST:", Args: []string{"arg1"}})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if got.Command != ":TEST:" || len(got.Args) != 1 || got.Args[0] != "arg1" {
		t.Errorf("handler received %+v", got)
	}
	if result != "result" {
		t.Errorf("expected 'result', got %v", result)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Command: ":UNKNOWN:"})

	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), ":UNKNOWN:") {
		t.Errorf("error should name the command, got %v", err)
	}
}

func TestDispatcher_HandlerErrorPropagates(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register(":FAIL:", func(e Event) (any, error) {
		return nil, fmt.Errorf("boom")
	})

	_, err := d.Dispatch(Event{Command: ":FAIL:"})
	if err == nil || err.Error() != "boom" {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestDispatcher_MinArgs(t *testing.T) {
	d, _ := newTestDispatcher(t)

	calls := 0
	d.Register(":ARGS:", func(e Event) (any, error) {
		calls++
		return nil, nil
	}, MinArgs(2))

	if _, err := d.Dispatch(Event{Command: ":ARGS:", Args: []string{"one"}}); err == nil {
		t.Error("expected error for too few args")
	}
	if calls != 0 {
		t.Errorf("handler should not run with too few args, ran %d times", calls)
	}

	if _, err := d.Dispatch(Event{Command: ":ARGS:", Args: []string{"one", "two"}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDispatcher_LoggedHandler(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register(":LOGGED:", func(e Event) (any, error) {
		return "ok", nil
	}, Logged())

	d.Dispatch(Event{Command: ":LOGGED:", Args: []string{"a", "b"}})

	logger.mu.Lock()
	defer logger.mu.Unlock()

	if len(logger.messages) < 2 {
		t.Errorf("expected at least 2 log messages, got %d", len(logger.messages))
	}
}

func TestDispatcher_LoggedHandlerError(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register(":ERROR:", func(e Event) (any, error) {
		return nil, fmt.Errorf("test error")
	}, Logged())

	d.Dispatch(Event{Command: ":ERROR:"})

	logger.mu.Lock()
	defer logger.mu.Unlock()

	hasError := false
	for _, msg := range logger.messages {
		if strings.HasPrefix(msg, "ERROR") {
			hasError = true
			break
		}
	}

	if !hasError {
		t.Error("expected error log message")
	}
}

func TestDispatcher_LoggedMinArgsFailureIsLogged(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register(":SHORT:", func(e Event) (any, error) { return nil, nil }, MinArgs(1), Logged())

	if _, err := d.Dispatch(Event{Command: ":SHORT:"}); err == nil {
		t.Fatal("expected error")
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()
	last := logger.messages[len(logger.messages)-1]
	if !strings.HasPrefix(last, "ERROR: event failed") {
		t.Errorf("expected failure log, got %q", last)
	}
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register(":EXISTS:", func(e Event) (any, error) { return nil, nil })

	if !d.HasHandler(":EXISTS:") {
		t.Error("expected handler to exist")
	}

	if d.HasHandler(":NOT_EXISTS:") {
		t.Error("expected handler to not exist")
	}
}

func TestDispatcher_Commands(t *testing.T) {
	d, _ := newTestDispatcher(t)

	noop := func(e Event) (any, error) { return nil, nil }
	d.Register(":REMOVE:", noop)
	d.Register(":HAMMER:", noop)
	d.Register(":PLAYER:DISCONNECT:", noop)

	got := d.Commands()
	want := []string{":HAMMER:", ":PLAYER:DISCONNECT:", ":REMOVE:"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
