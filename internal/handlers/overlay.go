package handlers

import (
	"log/slog"
	"sort"
	"sync"
)

// Panel names of the mass removal notice.
const (
	PanelRemoveAll     = "RemoveAllNotice"
	PanelRemoveAllText = "RemoveAllNoticeText"
)

// Notice is a screen overlay shown to one participant: a colored background
// panel with a single centered text element on top.
type Notice struct {
	Panel           string `json:"panel"`
	TextName        string `json:"textName"`
	Text            string `json:"text"`
	FontSize        int    `json:"fontSize"`
	TextColor       string `json:"textColor"`       // "r g b a", components in 0..1
	BackgroundColor string `json:"backgroundColor"` // same format as TextColor
	AnchorMin       string `json:"anchorMin"`
	AnchorMax       string `json:"anchorMax"`
}

// RemoveAllNotice is the banner shown while mass removal is on.
func RemoveAllNotice() Notice {
	return Notice{
		Panel:           PanelRemoveAll,
		TextName:        PanelRemoveAllText,
		Text:            "REMOVE ALL IS ACTIVE",
		FontSize:        24,
		TextColor:       "1 0 0 1",
		BackgroundColor: "1 1 1 0.6",
		AnchorMin:       "0.4 0.48",
		AnchorMax:       "0.6 0.52",
	}
}

// Overlay draws and destroys notices on participants' screens.
type Overlay interface {
	Show(playerID uint64, n Notice)
	Hide(playerID uint64, names ...string)
}

// NopOverlay discards everything.
type NopOverlay struct{}

func (NopOverlay) Show(uint64, Notice)     {}
func (NopOverlay) Hide(uint64, ...string) {}

// LogOverlay keeps track of which panels each participant has open and logs
// every change. The simulator uses it in place of a real client UI.
type LogOverlay struct {
	mu     sync.Mutex
	open   map[uint64]map[string]struct{}
	logger *slog.Logger
}

// NewLogOverlay creates an empty overlay. A nil logger uses slog.Default.
func NewLogOverlay(logger *slog.Logger) *LogOverlay {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogOverlay{
		open:   make(map[uint64]map[string]struct{}),
		logger: logger,
	}
}

func (o *LogOverlay) Show(playerID uint64, n Notice) {
	o.mu.Lock()
	defer o.mu.Unlock()

	panels, ok := o.open[playerID]
	if !ok {
		panels = make(map[string]struct{})
		o.open[playerID] = panels
	}
	panels[n.Panel] = struct{}{}
	if n.TextName != "" {
		panels[n.TextName] = struct{}{}
	}
	o.logger.Info("overlay shown", "player", playerID, "panel", n.Panel, "text", n.Text)
}

func (o *LogOverlay) Hide(playerID uint64, names ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	panels := o.open[playerID]
	for _, name := range names {
		delete(panels, name)
	}
	if len(panels) == 0 {
		delete(o.open, playerID)
	}
	o.logger.Debug("overlay hidden", "player", playerID, "panels", names)
}

// Open returns the sorted panel names currently shown to playerID.
func (o *LogOverlay) Open(playerID uint64) []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]string, 0, len(o.open[playerID]))
	for name := range o.open[playerID] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
