package hostcall

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kinasplayground/hammerremove/internal/dispatcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func newTestHost(t *testing.T) (*Host, *dispatcher.Dispatcher) {
	t.Helper()
	d, err := dispatcher.New(nopLogger{})
	require.NoError(t, err)
	return New(d, "1.3.1"), d
}

func TestFormatResponse(t *testing.T) {
	tests := []struct {
		name     string
		result   any
		err      error
		expected string
	}{
		{"nil result", nil, nil, `["ok"]`},
		{"string", "ok", nil, `["ok", "ok"]`},
		{"string with quotes", `say "hi"`, nil, `["ok", "say ""hi"""]`},
		{"int slice", []int{1, 2, 3}, nil, `["ok", [1,2,3]]`},
		{"map", map[string]int{"count": 42}, nil, `["ok", {"count":42}]`},
		{"struct", struct {
			Status string `json:"status"`
		}{"removed"}, nil, `["ok", {"status":"removed"}]`},
		{"error", nil, errors.New("no handler registered"), `["error", "no handler registered"]`},
		{"error wins over result", "ignored", errors.New("boom"), `["error", "boom"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatResponse(tt.result, tt.err))
		})
	}
}

func TestFormatResponse_UnmarshalableResult(t *testing.T) {
	got := FormatResponse(make(chan int), nil)
	assert.True(t, strings.HasPrefix(got, `["error", `), got)
}

func TestCall_Version(t *testing.T) {
	h, _ := newTestHost(t)
	assert.Equal(t, `["ok", "1.3.1"]`, h.Call(":VERSION:"))
}

func TestNew_DefaultVersion(t *testing.T) {
	h := New(nil, "")
	assert.Equal(t, "No version set", h.Version())
}

func TestCall_Timestamp(t *testing.T) {
	h, _ := newTestHost(t)
	h.now = func() time.Time { return time.Unix(1772366400, 0) }
	assert.Equal(t, `["ok", "1772366400000000000"]`, h.Call(":TIMESTAMP:"))
}

func TestCall_DispatchesWithArgs(t *testing.T) {
	h, d := newTestHost(t)

	var got []string
	d.Register(":ECHO:", func(e dispatcher.Event) (any, error) {
		got = e.Args
		return len(e.Args), nil
	})

	assert.Equal(t, `["ok", 2]`, h.Call(`:ECHO:|42|"all"`))
	assert.Equal(t, []string{"42", "all"}, got)
}

func TestCall_HandlerError(t *testing.T) {
	h, d := newTestHost(t)
	d.Register(":FAIL:", func(dispatcher.Event) (any, error) {
		return nil, errors.New("bad input")
	})

	assert.Equal(t, `["error", "bad input"]`, h.Call(":FAIL:"))
}

func TestCall_MinArgsRejected(t *testing.T) {
	h, d := newTestHost(t)
	d.Register(":NEEDS:", func(dispatcher.Event) (any, error) {
		return "ran", nil
	}, dispatcher.MinArgs(2))

	assert.Contains(t, h.Call(":NEEDS:|1"), "expected at least 2 args")
}

func TestInvoke_UnknownCommand(t *testing.T) {
	h, _ := newTestHost(t)
	_, err := h.Invoke(":NOPE:", nil)
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestInvoke_NoDispatcher(t *testing.T) {
	h := New(nil, "v")
	_, err := h.Invoke(":HAMMER:", nil)
	assert.ErrorIs(t, err, ErrNoHandler)

	v, err := h.Invoke(":VERSION:", nil)
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestCall_Empty(t *testing.T) {
	h, _ := newTestHost(t)
	assert.Equal(t, `["error", "empty call"]`, h.Call("   "))
}
