// Package hostcall is the synchronous text bridge between the host plugin and
// the extension. A call is "command|arg|arg"; every reply is a JSON array whose
// first element is "ok" or "error".
package hostcall

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kinasplayground/hammerremove/internal/dispatcher"
	"github.com/kinasplayground/hammerremove/internal/util"
)

const (
	CmdVersion   = ":VERSION:"
	CmdTimestamp = ":TIMESTAMP:"
)

// ErrNoHandler is returned for commands nobody registered.
var ErrNoHandler = errors.New("no handler registered")

// Host routes calls to a dispatcher.
type Host struct {
	version    string
	dispatcher *dispatcher.Dispatcher
	now        func() time.Time
}

// New creates a Host answering :VERSION: with version.
func New(d *dispatcher.Dispatcher, version string) *Host {
	if version == "" {
		version = "No version set"
	}
	return &Host{
		version:    version,
		dispatcher: d,
		now:        time.Now,
	}
}

// Version returns the version string reported to the host.
func (h *Host) Version() string {
	return h.version
}

// Call handles one raw call line and returns the reply.
func (h *Host) Call(input string) string {
	command, args := util.SplitCall(input)
	if command == "" {
		return FormatResponse(nil, fmt.Errorf("empty call"))
	}
	return FormatResponse(h.Invoke(command, args))
}

// Invoke runs command with already split arguments.
func (h *Host) Invoke(command string, args []string) (any, error) {
	switch command {
	case CmdVersion:
		return h.version, nil
	case CmdTimestamp:
		return strconv.FormatInt(h.now().UTC().UnixNano(), 10), nil
	}

	d := h.dispatcher
	if d == nil || !d.HasHandler(command) {
		return nil, fmt.Errorf("%s: %w", command, ErrNoHandler)
	}

	return d.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: h.now(),
	})
}

// FormatResponse encodes a handler result for the host.
// Strings are quoted as-is; everything else is marshalled to JSON.
func FormatResponse(result any, err error) string {
	if err != nil {
		return fmt.Sprintf(`["error", %s]`, quote(err.Error()))
	}
	if result == nil {
		return `["ok"]`
	}
	if s, ok := result.(string); ok {
		return fmt.Sprintf(`["ok", %s]`, quote(s))
	}
	b, mErr := json.Marshal(result)
	if mErr != nil {
		return fmt.Sprintf(`["error", %s]`, quote(mErr.Error()))
	}
	return fmt.Sprintf(`["ok", %s]`, b)
}

// quote doubles embedded quotes, which is how the host escapes strings.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
