package denylist

// DefaultPatterns contains the hardcoded suppression URLs. OAuth token
// refreshes fire constantly and carry nothing worth tracing.
var DefaultPatterns = Patterns{
	URLs: []string{
		"https://accounts.google.com/o/oauth2/token",
	},
}
