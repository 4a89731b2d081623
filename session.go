package phpldap

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	ldap3 "github.com/go-ldap/ldap/v3"
)

// Session is one logical directory connection. It starts unbound; Bind
// dials and authenticates, Unbind releases. A Session serves one flow of
// control at a time and is not safe for concurrent use.
type Session struct {
	uri     string
	conn    *ldap3.Conn
	options Options
}

// normalizeURI completes a hostname into a dialable URI the way PHP's
// ldap_connect historically did: trim whitespace, default the port from the
// scheme, append the port, then prefix a scheme when none is given. Order
// matters: the scheme decision reuses the resolved port.
func normalizeURI(hostname string, port int) string {
	uri := strings.TrimSpace(hostname)
	if port == 0 {
		if strings.HasPrefix(uri, "ldaps://") {
			port = 636
		} else {
			port = 389
		}
	}
	uri = fmt.Sprintf("%s:%d", uri, port)
	if !strings.HasPrefix(uri, "ldaps://") && !strings.HasPrefix(uri, "ldap://") {
		if port == 636 {
			uri = "ldaps://" + uri
		} else {
			uri = "ldap://" + uri
		}
	}
	return uri
}

// URI returns the normalized target of the session.
func (s *Session) URI() string {
	return s.uri
}

// Options returns the current session options.
func (s *Session) Options() Options {
	return s.options
}

// Bound reports whether the session currently holds a bound context.
func (s *Session) Bound() bool {
	return s.conn != nil
}

// Bind dials the target and performs a simple bind, replacing any previous
// bound context. An empty dn binds anonymously, ignoring the password. A
// non-empty dn with an empty password fails before any network traffic:
// some servers grant an anonymous bind to such a pair, which would let an
// empty form field impersonate any DN. Any transport or protocol failure
// leaves the session unbound and returns false.
func (s *Session) Bind(dn, password string) bool {
	if dn != "" && password == "" {
		slog.Debug("Refusing bind with empty password.", "binddn", dn)
		return false
	}

	slog.Debug("LDAP dial.", "uri", s.uri)
	conn, err := ldap3.DialURL(s.uri)
	if err != nil {
		slog.Debug("LDAP dial failed.", "uri", s.uri, "err", err)
		s.drop()
		return false
	}

	slog.Debug("LDAP simple bind.",
		"binddn", dn,
		"version", s.options.ProtocolVersion,
		"referrals", s.options.FollowReferrals,
	)
	if dn == "" {
		err = conn.UnauthenticatedBind("")
	} else {
		err = conn.Bind(dn, password)
	}
	if err != nil {
		slog.Debug("LDAP bind failed.", "binddn", dn, "err", err)
		_ = conn.Close()
		s.drop()
		return false
	}

	s.drop()
	s.conn = conn
	return true
}

// Search runs a directory search and drains the whole answer into a
// Result. Returns nil when the session is unbound or on any server error.
func (s *Session) Search(baseDN, filter string, attributes []string, attrsOnly bool, sizeLimit, timeLimit int, deref Deref, scope Scope) *Result {
	if s.conn == nil {
		slog.Debug("Search on unbound session.", "base", baseDN)
		return nil
	}

	if len(attributes) > 0 && !slices.Contains(attributes, "dn") {
		// PHP reports the DN even when the caller trims it from the
		// attribute list.
		attributes = append(slices.Clone(attributes), "dn")
	}

	req := ldap3.NewSearchRequest(
		baseDN,
		int(scope),
		deref.ldap(),
		sizeLimit,
		timeLimit,
		// Values are fetched and suppressed at normalization time, so
		// that attrsOnly behaves the same on servers ignoring the
		// typesOnly flag.
		false,
		cleanFilter(filter),
		attributes,
		nil,
	)
	slog.Debug("LDAP search.", "base", baseDN, "filter", filter, "scope", scope)
	res, err := s.conn.Search(req)
	if err != nil {
		slog.Debug("LDAP search failed.", "base", baseDN, "filter", filter, "err", err)
		return nil
	}
	return &Result{entries: res.Entries, attrsOnly: attrsOnly}
}

// Unbind releases the bound context. Returns false when the session never
// got bound in the first place. The context is dropped even when closing
// the connection reports an error.
func (s *Session) Unbind() bool {
	if s.conn == nil {
		return false
	}
	err := s.conn.Close()
	s.conn = nil
	if err != nil {
		slog.Debug("LDAP unbind failed.", "err", err)
		return false
	}
	return true
}

func (s *Session) drop() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}
