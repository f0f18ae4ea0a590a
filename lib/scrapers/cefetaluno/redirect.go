package cefetaluno

import (
	"net/url"
	"strings"
)

type redirectKind int

const (
	// not a redirect, use the response as-is
	redirectNone redirectKind = iota
	// ordinary upstream redirect, re-fetch the target
	redirectFollow
	// diverted to the CPA survey system
	redirectCpaBlocked
)

type redirectAction struct {
	kind   redirectKind
	target *url.URL
}

// classifyRedirect decides what a response fetched with redirects
// disabled means. Malformed Location values classify as redirectNone:
// an undetectable CPA diversion must not crash the flow, the caller
// just proceeds with whatever the response nominally is.
func classifyRedirect(status int, location string, base, cpaOrigin *url.URL) redirectAction {
	if status < 300 || status > 399 {
		return redirectAction{kind: redirectNone}
	}
	if location == "" {
		return redirectAction{kind: redirectNone}
	}
	ref, err := url.Parse(location)
	if err != nil {
		return redirectAction{kind: redirectNone}
	}
	resolved := base.ResolveReference(ref)
	if sameOrigin(resolved, cpaOrigin) {
		return redirectAction{kind: redirectCpaBlocked, target: resolved}
	}
	return redirectAction{kind: redirectFollow, target: resolved}
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

// resty surfaces a policy-stopped redirect as an error; the response is
// still usable for classification.
func isRedirectDisabledErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "auto redirect is disabled")
}
