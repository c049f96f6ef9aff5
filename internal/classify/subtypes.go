package classify

import (
	"net/url"
	"strings"
)

// GenericType is the resource type of HTTP calls matching no known API.
const GenericType = "http"

// auth0APIMarker is the management API prefix; the operation is the sub-path
// after it.
const auth0APIMarker = "/api/v2/"

// DefaultRegistry builds the registry of known API subtypes. Registration
// order is fixed, so resolution is deterministic.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Subtype{
			Type:      GenericType,
			Operation: func(req Request) string { return req.Method() },
		},
		Subtype{
			Tag:       "auth0",
			Type:      "auth0",
			Operation: func(req Request) string { return afterMarker(req.Path(), auth0APIMarker) },
		},
		Subtype{
			Tag:       "twilio",
			Type:      "twilio",
			Operation: func(req Request) string { return lastSegments(req.Path(), 1) },
		},
		Subtype{
			Tag:       "googleapis",
			Type:      "googleapis",
			Operation: func(req Request) string { return lastSegments(req.Path(), 2) },
			Retype:    googleService,
		},
		Subtype{
			Tag:       "outlook.office",
			Type:      "outlook.office",
			Operation: func(req Request) string { return lastSegments(req.Path(), 2) },
		},
	)
}

// afterMarker returns the part of path following marker, or the whole path
// when the marker is absent.
func afterMarker(path, marker string) string {
	if idx := strings.Index(path, marker); idx >= 0 {
		return path[idx+len(marker):]
	}
	return path
}

// lastSegments returns the last n slash-separated segments of path.
func lastSegments(path string, n int) string {
	parts := strings.Split(path, "/")
	if len(parts) > n {
		parts = parts[len(parts)-n:]
	}
	return strings.Join(parts, "/")
}

// googleService derives a per-service resource type, e.g. google_calendar
// for www.googleapis.com/calendar/v3/... URLs.
func googleService(req Request) string {
	u, err := url.Parse(req.URL())
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	return "google_" + parts[0]
}
