package spanwatch

import (
	"go.uber.org/zap"

	"github.com/spanwatch/spanwatch/internal/emit"
	"github.com/spanwatch/spanwatch/internal/stackcap"
)

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	denylistPath string
	emitter      emit.Emitter
	logger       *zap.Logger
	frameCapture bool
	inspector    stackcap.LocalsInspector
}

// WithDenylist sets the path to a deny-list YAML file of destination URLs
// whose events are suppressed.
func WithDenylist(path string) Option {
	return func(c *clientConfig) { c.denylistPath = path }
}

// WithEmitter sets the transport boundary that receives finalized event
// representations. Defaults to an in-process accumulator.
func WithEmitter(e emit.Emitter) Option {
	return func(c *clientConfig) { c.emitter = e }
}

// WithLogger sets the diagnostics logger. Defaults to a nop logger so the
// library stays silent inside host applications.
func WithLogger(log *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = log }
}

// WithFrameCapture enables per-frame local snapshots on captured
// exceptions. Off by default for cost and privacy.
func WithFrameCapture(enabled bool) Option {
	return func(c *clientConfig) { c.frameCapture = enabled }
}

// WithLocalsInspector supplies the capability that exposes per-frame local
// bindings. Without one, frame data is omitted even when frame capture is
// enabled.
func WithLocalsInspector(insp stackcap.LocalsInspector) Option {
	return func(c *clientConfig) { c.inspector = insp }
}
