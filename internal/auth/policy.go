package auth

import (
	"net/http"
	"strings"
)

// Policy lists the routes reachable without a token.
type Policy struct {
	ExemptPaths    map[string]struct{}
	ExemptPrefixes []string
}

// NewDefaultPolicy builds a policy with exemptions.
func NewDefaultPolicy(exemptPaths []string, exemptPrefixes []string) Policy {
	set := make(map[string]struct{}, len(exemptPaths))
	for _, path := range exemptPaths {
		set[path] = struct{}{}
	}
	return Policy{ExemptPaths: set, ExemptPrefixes: exemptPrefixes}
}

// DashboardPolicy exempts the login flow and the operational endpoints.
func DashboardPolicy() Policy {
	return NewDefaultPolicy(
		[]string{"/login", "/signup", "/healthz", "/metrics"},
		[]string{"/static/"},
	)
}

// IsExempt returns true when a request should skip the gate.
func (p Policy) IsExempt(r *http.Request) bool {
	if r == nil {
		return true
	}
	if _, ok := p.ExemptPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range p.ExemptPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}
