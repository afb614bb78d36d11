package auth

import (
	"strings"
)

// Decision is the outcome of evaluating a request against the route policy.
type Decision int

const (
	// Allow grants access to the route.
	Allow Decision = iota
	// Unauthenticated means the route requires an authority and no valid
	// claims were presented.
	Unauthenticated
	// Forbidden means valid claims were presented but lack the required
	// authority.
	Forbidden
)

// Rule is one entry of the route policy table. An empty Method matches any
// method; an empty Authority makes the route public. Patterns ending in "/**"
// match the prefix and everything below it.
type Rule struct {
	Method    string
	Pattern   string
	Authority string
}

// Policy is an ordered route policy table, evaluated first-match.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from an ordered rule list.
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy is the catalog access policy: the greeting endpoint, book
// reads and the operational endpoints are public; every other route requires
// the employee authority.
func DefaultPolicy() *Policy {
	return NewPolicy([]Rule{
		{Method: "GET", Pattern: "/"},
		{Method: "GET", Pattern: "/books/**"},
		{Pattern: "/actuator/**"},
		{Pattern: "/**", Authority: AuthorityPrefix + "employee"},
	})
}

// Decide maps (method, path, claims) to an access decision. It is a pure
// function of its inputs: no session state is created or consulted.
func (p *Policy) Decide(method, path string, claims *Claims) Decision {
	rule, ok := p.match(method, path)
	if !ok {
		// No rule matched: deny rather than fall through open.
		if claims == nil {
			return Unauthenticated
		}
		return Forbidden
	}

	if rule.Authority == "" {
		return Allow
	}
	if claims == nil {
		return Unauthenticated
	}
	for _, authority := range Authorities(claims.Roles) {
		if authority == rule.Authority {
			return Allow
		}
	}
	return Forbidden
}

func (p *Policy) match(method, path string) (Rule, bool) {
	for _, rule := range p.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule, true
		}
	}
	return Rule{}, false
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if prefix == "" {
			return true
		}
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
