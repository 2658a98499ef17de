package redirect

import (
	"strings"

	"github.com/dmitrymomot/localeroute/pkg/domainlocale"
)

// DomainRedirect returns the absolute URL of path on the domain of the
// target locale. It reports false when domains are not in use, the target
// has no domain, or host already serves it.
//
//	DomainRedirect("en.test", "fr", "/about?x=1") -> "https://fr.test/about?x=1", true
func (p *Planner) DomainRedirect(host, target, path string) (string, bool) {
	if !p.cfg.DifferentDomains {
		return "", false
	}
	l, ok := p.cfg.Locales.Find(target)
	if !ok {
		return "", false
	}

	domain := domainlocale.DomainOf(l)
	if domain == "" {
		return "", false
	}
	h := strings.ToLower(host)
	if h == domain || domainlocale.StripPort(h) == domain {
		return "", false
	}

	if path == "" {
		path = "/"
	}
	return domainlocale.Origin(l) + path, true
}

// LoopGuard holds the last attempted redirect target so that a full page
// redirect is not repeated when it comes back to the same target.
// It is meant for one sequential navigation flow and is not safe for
// concurrent use.
type LoopGuard struct {
	last string
}

// NewLoopGuard restores a guard from a stored marker.
func NewLoopGuard(last string) *LoopGuard {
	return &LoopGuard{last: last}
}

// Allow reports whether redirecting to target is allowed. The marker is
// cleared on every call.
func (g *LoopGuard) Allow(target string) bool {
	last := g.last
	g.last = ""
	return last != target
}

// Mark records target as the last attempted redirect.
func (g *LoopGuard) Mark(target string) {
	g.last = target
}

// Last returns the stored marker.
func (g *LoopGuard) Last() string {
	return g.last
}
