package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the configuration for a request, or nil when the default applies.
// An exact path match wins over a prefix rule; rules ending in "/" match by prefix,
// so "/matches/" covers "/matches/{id}/interview". GET /health is unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if c := &configs[i]; c.Path == path && c.Method == method {
			return c
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
