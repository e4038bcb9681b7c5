// Package clipboard carries drag transfers over the system clipboard, for
// desktops where the CLI cannot own a native drag session.
package clipboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mj1618/desktop-dnd/internal/platform"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"golang.design/x/clipboard"
)

func init() {
	platform.NewHostFuncs["clipboard"] = func() (platform.Host, error) {
		return NewHost()
	}
}

// Host publishes the locator list of every drag as clipboard text.
type Host struct{}

// NewHost initialises the system clipboard.
func NewHost() (*Host, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard unavailable: %w", err)
	}
	return &Host{}, nil
}

func (h *Host) StartDrag(req platform.DragRequest) error {
	data, err := req.Transfer.Data(transfer.LocatorListFlavor)
	if err != nil {
		return fmt.Errorf("drag %s: %w", req.Gesture, err)
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// Pending returns the clipboard contents as a transfer, or nil when the
// clipboard holds no text.
func (h *Host) Pending() transfer.Transferable {
	b := Parse(clipboard.Read(clipboard.FmtText))
	if b == nil {
		return nil
	}
	return b
}

// Parse wraps clipboard text in a bundle. A JSON array is offered as the
// locator list flavor, anything else as a URI list.
func Parse(text []byte) *transfer.Bundle {
	text = bytes.TrimSpace(text)
	if len(text) == 0 {
		return nil
	}
	if text[0] == '[' && json.Valid(text) {
		return transfer.NewBundle().Put(transfer.LocatorListFlavor, text)
	}
	return transfer.NewBundle().Put(transfer.FileListFlavor, []byte(strings.ReplaceAll(string(text), "\r\n", "\n")))
}
