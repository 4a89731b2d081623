// Package phpldap reimplements a subset of PHP's ldap_* functions on top of
// go-ldap, for host runtimes that embed PHP scripts and need them to talk to
// a directory server.
//
// The package mirrors PHP's historical quirks on purpose: hostnames are
// trimmed and completed into URIs, ports default to 389 or 636, filters may
// omit the outer parentheses, and every failure collapses to a boolean false
// or a nil result. Nothing here ever panics or returns an error to the
// caller.
package phpldap

// Connect prepares a session handle for the given host. Following PHP, the
// hostname may be a bare host name, an ldap:// or ldaps:// URI, and may
// carry stray whitespace. Pass port 0 to use the scheme default: 636 for
// ldaps://, 389 otherwise. No network traffic happens before Bind.
func Connect(hostname string, port int) *Session {
	return &Session{
		uri:     normalizeURI(hostname, port),
		options: defaultOptions(),
	}
}

// Bind performs a simple bind on link. An empty dn attempts an anonymous
// bind, whatever the password. Returns false on a nil link, bad credentials
// or an unreachable server.
func Bind(link *Session, dn, password string) bool {
	if link == nil {
		return false
	}
	return link.Bind(dn, password)
}

// Search runs a subtree search under baseDN and returns a raw result, or
// nil when link is absent, unbound, or the server reports any error.
//
// A nil attributes slice fetches all attributes. An explicit list always
// includes the entry DN, even when the caller omits it. With attrsOnly,
// entries carry attribute names but no values. sizeLimit and timeLimit are
// passed through to the server, zero meaning no limit.
func Search(link *Session, baseDN, filter string, attributes []string, attrsOnly bool, sizeLimit, timeLimit int, deref Deref) *Result {
	if link == nil {
		return nil
	}
	return link.Search(baseDN, filter, attributes, attrsOnly, sizeLimit, timeLimit, deref, ScopeSub)
}

// Read is Search restricted to the base object itself.
func Read(link *Session, baseDN, filter string, attributes []string, attrsOnly bool, sizeLimit, timeLimit int, deref Deref) *Result {
	if link == nil {
		return nil
	}
	return link.Search(baseDN, filter, attributes, attrsOnly, sizeLimit, timeLimit, deref, ScopeBase)
}

// GetEntries converts a raw search result into the nested array shape PHP
// programs expect. Returns nil for a nil result. The link argument is
// unused; PHP's ldap_get_entries takes it, so this surface does too.
func GetEntries(_ *Session, result *Result) *Entries {
	if result == nil {
		return nil
	}
	return result.normalize()
}

// SetOption sets one of the two mutable session options by its PHP name,
// OptProtocolVersion or OptReferrals. Any other name fails, including the
// four read-only LDAP_DEREF_* constants. Nothing is mutated on failure.
func SetOption(link *Session, option string, value int) bool {
	if link == nil {
		return false
	}
	return link.options.set(option, value)
}

// Unbind releases the bound context of link. Returns false when link is
// absent or was never bound. Always safe to call again.
func Unbind(link *Session) bool {
	if link == nil {
		return false
	}
	return link.Unbind()
}
