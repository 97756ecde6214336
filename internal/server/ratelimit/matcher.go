package ratelimit

import (
	"net/http"
	"strings"
)

// unthrottledRoutes are probed by load balancers and uptime checks.
var unthrottledRoutes = map[string]bool{
	"/":       true,
	"/health": true,
}

// MatchRoute finds the limit for a request to the generator API.
//
// Exact path and method matches win. Otherwise configs whose path ends in "/"
// match any item below it (e.g. "/api/companies/" covers "/api/companies/7"),
// and the longest such prefix is used. It returns nil when the request falls
// under the default limit.
func MatchRoute(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && unthrottledRoutes[path] {
		return &EndpointConfig{} // zero limit means unlimited
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}
