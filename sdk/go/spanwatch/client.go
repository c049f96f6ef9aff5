package spanwatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spanwatch/spanwatch/internal/classify"
	"github.com/spanwatch/spanwatch/internal/denylist"
	"github.com/spanwatch/spanwatch/internal/emit"
	"github.com/spanwatch/spanwatch/internal/stackcap"
)

// Client is the embedding handle for the event core. Thread-safe for
// concurrent observed calls.
type Client struct {
	cfg        clientConfig
	deny       *denylist.Denylist
	classifier *classify.Classifier
	emitter    emit.Emitter
	acc        *emit.Accumulator
	log        *zap.Logger
}

// New creates a Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := clientConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	deny, err := denylist.Load(cfg.denylistPath)
	if err != nil {
		return nil, fmt.Errorf("spanwatch: failed to load denylist: %w", err)
	}

	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}

	capturer := stackcap.New()
	capturer.CollectFrames = cfg.frameCapture
	capturer.Inspector = cfg.inspector

	c := &Client{
		cfg:  cfg,
		deny: deny,
		log:  log,
	}
	c.emitter = cfg.emitter
	if c.emitter == nil {
		c.acc = emit.NewAccumulator()
		c.emitter = c.acc
	}
	c.classifier = classify.New(classify.DefaultRegistry(), deny, capturer, log)
	return c, nil
}

// Observe classifies one observed call and hands the finalized
// representation to the emitter. Suppressed destinations and internal
// capture failures emit nothing; neither disturbs the caller.
func (c *Client) Observe(call Call) {
	ev := c.classifier.Process(toInternalCall(call))
	if ev == nil {
		return
	}
	c.emitter.Record(ev.ToRepresentation())
}

// Events returns a snapshot of accumulated representations. Nil when a
// custom emitter was installed.
func (c *Client) Events() []map[string]any {
	if c.acc == nil {
		return nil
	}
	return c.acc.Events()
}

// TraceJSON exports the accumulated trace for debugging. Nil when a custom
// emitter was installed.
func (c *Client) TraceJSON() map[string]any {
	if c.acc == nil {
		return nil
	}
	return c.acc.ToJSON()
}

// WatchDenylist hot-reloads the deny-list on file changes. Blocks until ctx
// is cancelled. Requires WithDenylist to have named a path.
func (c *Client) WatchDenylist(ctx context.Context) error {
	if c.cfg.denylistPath == "" {
		return fmt.Errorf("spanwatch: no denylist path configured")
	}
	reloader, err := denylist.NewReloader(c.deny, c.cfg.denylistPath)
	if err != nil {
		return err
	}
	return reloader.Run(ctx)
}
