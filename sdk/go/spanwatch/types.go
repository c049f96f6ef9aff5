package spanwatch

import (
	"github.com/spanwatch/spanwatch/internal/classify"
)

// Request is the outgoing request descriptor spanwatch reads. The
// instrumentation layer supplies an adapter over its transport library's
// request object.
type Request interface {
	Method() string
	URL() string
	Path() string
	Body() string
}

// Response is the already-retrieved response of an observed call. JSON
// returns the decoded body or an error when the body is not JSON.
type Response interface {
	StatusCode() int
	Headers() map[string]string
	JSON() (any, error)
}

// Call is one observed invocation: the wrapped callable, its bound
// instance, the call arguments, and the outcome. Args[0] must be a Request.
// Response and Exception are nil when the call produced none.
type Call struct {
	Wrapped   any
	Instance  any
	Args      []any
	Kwargs    map[string]any
	Response  Response
	Exception any
}

// toInternalCall maps an SDK Call to a classifier Call. The Request and
// Response method sets are identical, so values pass through directly.
func toInternalCall(c Call) classify.Call {
	internal := classify.Call{
		Wrapped:   c.Wrapped,
		Instance:  c.Instance,
		Args:      c.Args,
		Kwargs:    c.Kwargs,
		Exception: c.Exception,
	}
	if c.Response != nil {
		internal.Response = c.Response
	}
	return internal
}
