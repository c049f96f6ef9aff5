// Package classify resolves the most specific event subtype for an observed
// outbound call and builds its trace event. Any failure in here is logged
// and swallowed: the instrumented application must observe zero behavioral
// difference.
package classify

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spanwatch/spanwatch/internal/denylist"
	"github.com/spanwatch/spanwatch/internal/event"
	"github.com/spanwatch/spanwatch/internal/sanitize"
	"github.com/spanwatch/spanwatch/internal/stackcap"
)

// Request is the outgoing request descriptor the classifier reads. The
// instrumentation layer supplies transport-library-specific adapters.
type Request interface {
	Method() string
	URL() string
	Path() string
	Body() string
}

// Response is the already-retrieved response of an observed call.
type Response interface {
	StatusCode() int
	Headers() map[string]string
	JSON() (any, error)
}

// Call is one observed invocation as handed over by the instrumentation
// layer. Args[0] must be a Request. Response and Exception are nil when the
// call produced none.
type Call struct {
	Wrapped   any
	Instance  any
	Args      []any
	Kwargs    map[string]any
	Response  Response
	Exception any
}

// Classifier builds trace events for observed calls. Stateless across
// calls; the registry and deny-list are read-only after construction.
type Classifier struct {
	registry *Registry
	deny     *denylist.Denylist
	capturer *stackcap.Capturer
	log      *zap.Logger
	origin   string
}

// New creates a Classifier. Nil collaborators fall back to defaults: the
// built-in registry, the default deny-list, a frameless capturer and a nop
// logger.
func New(reg *Registry, deny *denylist.Denylist, capturer *stackcap.Capturer, log *zap.Logger) *Classifier {
	if reg == nil {
		reg = DefaultRegistry()
	}
	if deny == nil {
		deny = denylist.NewDefault()
	}
	if capturer == nil {
		capturer = stackcap.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{
		registry: reg,
		deny:     deny,
		capturer: capturer,
		log:      log,
		origin:   event.OriginBase,
	}
}

// Process builds the event for one observed call. It returns nil when the
// destination is deny-listed or when capture failed internally; it never
// panics into the caller.
func (c *Classifier) Process(call Call) (ev *event.Event) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("could not create request event", zap.Any("panic", r))
			ev = nil
		}
	}()

	req, ok := requestOf(call)
	if !ok {
		c.log.Warn("observed call carries no request descriptor")
		return nil
	}

	st := c.registry.Resolve(hostOf(req.URL()))
	ev = c.build(st, call, req)
	ev.Terminate()

	// Suppression is evaluated last, after metadata is fully populated, so
	// suppressed events are a no-op from the emitter's perspective.
	if st.Tag == "" && c.deny.Suppressed(req.URL()) {
		c.log.Debug("event suppressed by deny-list", zap.String("url", req.URL()))
		return nil
	}
	return ev
}

// build constructs the event for the resolved subtype and folds in response
// and failure data.
func (c *Classifier) build(st Subtype, call Call, req Request) *event.Event {
	e := event.New(event.Now(), c.origin, st.Type)
	e.Resource.Name = st.Type
	if st.Retype != nil {
		if t := st.Retype(req); t != "" {
			e.Resource.Type = t
		}
	}
	if st.Operation != nil {
		e.Resource.Operation = st.Operation(req)
	}

	e.Resource.Metadata["method"] = req.Method()
	e.Resource.Metadata["url"] = req.URL()
	e.Resource.Metadata["request_body"] = req.Body()

	if call.Response != nil {
		c.foldResponse(e, call.Response)
	}
	if call.Exception != nil {
		// The wrapped call raised, so the failure was not handled.
		e.AttachException(c.capturer.Capture(call.Exception, nil, false, false))
	}
	return e
}

// foldResponse records status, headers and body. Only JSON bodies are kept;
// anything unparsable becomes nil rather than a raw non-serializable value.
func (c *Classifier) foldResponse(e *event.Event, resp Response) {
	meta := e.Resource.Metadata
	meta["status_code"] = resp.StatusCode()

	headers := map[string]any{}
	for k, v := range resp.Headers() {
		headers[k] = v
	}
	meta["response_headers"] = headers

	meta["response_body"] = nil
	if body, err := resp.JSON(); err == nil {
		meta["response_body"] = sanitize.Copy(body)
	}

	if resp.StatusCode() >= 300 {
		e.SetError()
	}
}

// requestOf extracts the request descriptor from the first positional
// argument.
func requestOf(call Call) (Request, bool) {
	if len(call.Args) == 0 {
		return nil, false
	}
	req, ok := call.Args[0].(Request)
	return req, ok && req != nil
}

// hostOf returns the lowercase network-location portion of rawURL, or ""
// when it cannot be parsed.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
