// Package spanwatch is the embedding surface of the spanwatch event core.
// Instrumentation layers hand it observed calls; it resolves the most
// specific event subtype for each destination, folds response and failure
// data into a structured trace event, and passes the finalized
// representation to an Emitter. Capture is best-effort: a failure inside
// spanwatch is logged and swallowed, never surfaced to the host
// application.
//
// Usage:
//
//	sw, err := spanwatch.New()
//	client := &http.Client{Transport: sw.Transport(nil)}
//	resp, err := client.Get("https://api.twilio.com/2010-04-01/Accounts/AC1/Messages.json")
//	// ... later, ship sw.Events() through your transport.
//
// External users import github.com/spanwatch/spanwatch/sdk/go/spanwatch.
package spanwatch
