package security

import "strings"

// ContentSecurityPolicy builds a Content-Security-Policy header value for
// the page embedding the mini app. Returns "" when CSP is disabled.
//
// The allowed origins double as the legitimate embedders (frame-ancestors)
// and as permitted connect targets, including their ws/wss forms for the
// bridge socket. With no origin restriction configured, any ancestor may
// embed the app.
func (c Config) ContentSecurityPolicy() string {
	if !c.EnableCSP {
		return ""
	}

	connectSrc := []string{"'self'"}
	frameAncestors := []string{"'self'"}
	for _, origin := range c.AllowedOrigins {
		connectSrc = append(connectSrc, origin)
		if ws, ok := toWebSocketOrigin(origin); ok {
			connectSrc = append(connectSrc, ws)
		}
		frameAncestors = append(frameAncestors, origin)
	}
	if len(c.AllowedOrigins) == 0 {
		frameAncestors = []string{"*"}
	}

	directives := []string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"connect-src " + strings.Join(connectSrc, " "),
		"frame-ancestors " + strings.Join(frameAncestors, " "),
	}

	return strings.Join(directives, "; ")
}

func toWebSocketOrigin(origin string) (string, bool) {
	switch {
	case strings.HasPrefix(origin, "https://"):
		return "wss://" + strings.TrimPrefix(origin, "https://"), true
	case strings.HasPrefix(origin, "http://"):
		return "ws://" + strings.TrimPrefix(origin, "http://"), true
	default:
		return "", false
	}
}
