// Package ldaptest runs a minimal in-memory LDAP server over a fixed
// directory, for tests. It supports simple bind and searches with base,
// one-level and subtree scope, and evaluates equality, presence and
// and/or/not filters. Nothing more.
package ldaptest

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nmcclain/ldap"
)

// Well-known names of the served directory.
const (
	BaseDN          = "dc=example,dc=com"
	PeopleDN        = "ou=People,dc=example,dc=com"
	GroupsDN        = "ou=Groups,dc=example,dc=com"
	SallyDN         = "uid=sally,ou=People,dc=example,dc=com"
	ManagerDN       = "cn=Manager,dc=example,dc=com"
	ManagerPassword = "secret"
)

// BindAttempt records one bind request as seen by the server.
type BindAttempt struct {
	DN       string
	Password string
}

// Server is an LDAP server bound to a 127.0.0.1 ephemeral port. Anonymous
// binds are allowed; ManagerDN/ManagerPassword is the only credentialed
// account.
type Server struct {
	srv *ldap.Server
	ln  net.Listener

	mu    sync.Mutex
	binds []BindAttempt
}

// New starts a server and waits for it to accept connections.
func New() (*Server, error) {
	s := &Server{
		srv: ldap.NewServer(),
	}
	s.srv.BindFunc("", binder{s})
	s.srv.SearchFunc("", searcher{directory()})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s.ln = ln
	go func() {
		_ = s.srv.Serve(ln)
	}()

	err = retry.Do(
		func() error {
			c, err := net.DialTimeout("tcp", s.Addr(), time.Second)
			if err == nil {
				_ = c.Close()
			}
			return err
		},
		retry.Attempts(20),
		retry.Delay(10*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Addr returns host:port to dial.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Host returns the listening host.
func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(s.Addr())
	return host
}

// Port returns the listening port.
func (s *Server) Port() int {
	addr := s.ln.Addr().(*net.TCPAddr)
	return addr.Port
}

// BindAttempts returns a copy of every bind request received so far.
func (s *Server) BindAttempts() []BindAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]BindAttempt, len(s.binds))
	copy(out, s.binds)
	return out
}

func (s *Server) Close() {
	if s.srv != nil {
		s.srv.Quit <- true
	}
	if s.ln != nil {
		_ = s.ln.Close()
	}
}

type binder struct {
	s *Server
}

func (b binder) Bind(bindDN, bindSimplePw string, _ net.Conn) (ldap.LDAPResultCode, error) {
	b.s.mu.Lock()
	b.s.binds = append(b.s.binds, BindAttempt{DN: bindDN, Password: bindSimplePw})
	b.s.mu.Unlock()

	if bindDN == "" {
		return ldap.LDAPResultSuccess, nil
	}
	if strings.EqualFold(bindDN, ManagerDN) && bindSimplePw == ManagerPassword {
		return ldap.LDAPResultSuccess, nil
	}
	return ldap.LDAPResultInvalidCredentials, nil
}

type searcher struct {
	entries []*ldap.Entry
}

func (h searcher) Search(_ string, req ldap.SearchRequest, _ net.Conn) (ldap.ServerSearchResult, error) {
	var matched []*ldap.Entry
	for _, entry := range h.entries {
		if !inScope(entry.DN, req.BaseDN, req.Scope) {
			continue
		}
		if !matchFilter(req.Filter, entry) {
			continue
		}
		matched = append(matched, project(entry, req.Attributes))
		if req.SizeLimit > 0 && len(matched) >= req.SizeLimit {
			break
		}
	}
	return ldap.ServerSearchResult{
		Entries:    matched,
		Referrals:  []string{},
		Controls:   []ldap.Control{},
		ResultCode: ldap.LDAPResultSuccess,
	}, nil
}

func inScope(dn, base string, scope int) bool {
	dn = strings.ToLower(dn)
	base = strings.ToLower(base)
	switch scope {
	case ldap.ScopeBaseObject:
		return dn == base
	case ldap.ScopeSingleLevel:
		if !strings.HasSuffix(dn, ","+base) {
			return false
		}
		rdn := strings.TrimSuffix(dn, ","+base)
		return !strings.Contains(rdn, ",")
	default:
		return dn == base || strings.HasSuffix(dn, ","+base)
	}
}

// project restricts entry to the requested attributes. An empty list or a
// wildcard keeps everything. "dn" is not an attribute and is skipped.
func project(entry *ldap.Entry, attributes []string) *ldap.Entry {
	if len(attributes) == 0 {
		return entry
	}
	keep := []*ldap.EntryAttribute{}
	for _, name := range attributes {
		if name == "*" {
			return entry
		}
	}
	for _, attr := range entry.Attributes {
		for _, name := range attributes {
			if strings.EqualFold(attr.Name, name) {
				keep = append(keep, attr)
				break
			}
		}
	}
	return &ldap.Entry{DN: entry.DN, Attributes: keep}
}

// matchFilter evaluates a filter string against an entry.
func matchFilter(filter string, entry *ldap.Entry) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	if strings.HasPrefix(filter, "(") && strings.HasSuffix(filter, ")") {
		filter = filter[1 : len(filter)-1]
	}
	switch {
	case strings.HasPrefix(filter, "&"):
		for _, sub := range splitFilters(filter[1:]) {
			if !matchFilter(sub, entry) {
				return false
			}
		}
		return true
	case strings.HasPrefix(filter, "|"):
		for _, sub := range splitFilters(filter[1:]) {
			if matchFilter(sub, entry) {
				return true
			}
		}
		return false
	case strings.HasPrefix(filter, "!"):
		subs := splitFilters(filter[1:])
		return len(subs) == 1 && !matchFilter(subs[0], entry)
	}

	name, value, ok := strings.Cut(filter, "=")
	if !ok {
		return false
	}
	for _, attr := range entry.Attributes {
		if !strings.EqualFold(attr.Name, name) {
			continue
		}
		if value == "*" {
			return len(attr.Values) > 0
		}
		for _, v := range attr.Values {
			if strings.EqualFold(v, value) {
				return true
			}
		}
	}
	return false
}

// splitFilters cuts "(a=1)(b=2)" into its balanced components.
func splitFilters(s string) (out []string) {
	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '(':
			if depth == 0 {
				start = i
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				out = append(out, s[start:i+1])
			}
		}
	}
	return
}
