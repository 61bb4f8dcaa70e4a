// Package detect provides interchangeable person-detection backends for
// the crop engine. Each backend satisfies crop.Detector; callers pick one
// at startup and the engine never knows which it got.
package detect

import (
	"fmt"
	"time"

	"github.com/SalmaanRauf/Reel-Maker/internal/crop"
)

// Backend names accepted by New.
const (
	KindPigo   = "pigo"
	KindONNX   = "onnx"
	KindRemote = "remote"
)

// Options carry backend-specific settings; only the field for the chosen
// kind is consulted.
type Options struct {
	CascadePath   string
	ModelPath     string
	SidecarSocket string
	SidecarWait   time.Duration
}

// New constructs the detector backend named by kind.
func New(kind string, opts Options) (crop.Detector, error) {
	switch kind {
	case KindPigo:
		return NewPigoDetector(opts.CascadePath)
	case KindONNX:
		return NewONNXDetector(opts.ModelPath)
	case KindRemote:
		return NewRemoteDetector(opts.SidecarSocket, opts.SidecarWait), nil
	default:
		return nil, fmt.Errorf("unknown detector backend %q", kind)
	}
}
