// Package script drives the platform bridge from recorded gesture sessions.
package script

import (
	"github.com/mj1618/desktop-dnd/internal/platform"
	"github.com/mj1618/desktop-dnd/internal/transfer"
)

func init() {
	platform.NewHostFuncs["script"] = func() (platform.Host, error) {
		return NewHost(), nil
	}
}

// Host records drag requests instead of handing them to an OS. The most
// recent request is offered back as the pending transfer, which lets a
// session drag from one region and drop onto another.
type Host struct {
	requests []platform.DragRequest
}

// NewHost returns an empty recording host.
func NewHost() *Host {
	return &Host{}
}

func (h *Host) StartDrag(req platform.DragRequest) error {
	h.requests = append(h.requests, req)
	return nil
}

// Requests returns every drag request received so far.
func (h *Host) Requests() []platform.DragRequest {
	return h.requests
}

// Pending returns the transfer of the last drag, or nil.
func (h *Host) Pending() transfer.Transferable {
	if len(h.requests) == 0 {
		return nil
	}
	return h.requests[len(h.requests)-1].Transfer
}
