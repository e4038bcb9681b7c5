package script

import (
	"fmt"
	"os"

	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"gopkg.in/yaml.v3"
)

// Event types understood by the runner.
const (
	EventDrag    = "drag"    // native drag gesture recognized
	EventEnter   = "enter"   // transfer entered the window
	EventOver    = "over"    // pointer moved while hovering
	EventDrop    = "drop"    // transfer dropped
	EventExit    = "exit"    // transfer left without a drop
	EventDensity = "density" // display density changed
)

// Script is a layout plus the native events to replay against it.
type Script struct {
	Layout model.Layout `yaml:"layout" json:"layout"`
	Events []Event      `yaml:"events" json:"events"`
}

// Event is one native callback. Coordinates are native pixels.
type Event struct {
	Type    string            `yaml:"type"              json:"type"`
	X       float32           `yaml:"x,omitempty"       json:"x,omitempty"`
	Y       float32           `yaml:"y,omitempty"       json:"y,omitempty"`
	Files   []string          `yaml:"files,omitempty"   json:"files,omitempty"`   // Carried as a file list
	Records []transfer.Record `yaml:"records,omitempty" json:"records,omitempty"` // Carried as a locator list
	Density float32           `yaml:"density,omitempty" json:"density,omitempty"`
}

// Parse decodes a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and decodes a YAML script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Validate checks the layout and event types.
func (s *Script) Validate() error {
	if err := s.Layout.Validate(); err != nil {
		return err
	}
	for i, e := range s.Events {
		switch e.Type {
		case EventDrag, EventEnter, EventOver, EventDrop, EventExit:
		case EventDensity:
			if e.Density <= 0 {
				return fmt.Errorf("event %d: density must be positive", i)
			}
		default:
			return fmt.Errorf("event %d: unknown type %q", i, e.Type)
		}
	}
	return nil
}

// transferable builds the native payload carried by e. It returns nil when
// the event carries nothing of its own.
func (e Event) transferable() (transfer.Transferable, error) {
	b := transfer.NewBundle()
	if len(e.Records) > 0 {
		rb, err := transfer.EncodeRecords(e.Records)
		if err != nil {
			return nil, err
		}
		data, _ := rb.Data(transfer.LocatorListFlavor)
		b.Put(transfer.LocatorListFlavor, data)
	}
	if len(e.Files) > 0 {
		b.Put(transfer.FileListFlavor, transfer.EncodeURIList(e.Files))
	}
	if len(b.Flavors()) == 0 {
		return nil, nil
	}
	return b, nil
}
