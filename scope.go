package phpldap

import (
	"fmt"

	ldap3 "github.com/go-ldap/ldap/v3"
)

// Scope selects the breadth of a directory search.
type Scope int

const (
	ScopeBase Scope = ldap3.ScopeBaseObject
	ScopeOne  Scope = ldap3.ScopeSingleLevel
	ScopeSub  Scope = ldap3.ScopeWholeSubtree
)

func ParseScope(s string) (Scope, error) {
	switch s {
	case "sub":
		return ScopeSub, nil
	case "base":
		return ScopeBase, nil
	case "one":
		return ScopeOne, nil
	default:
		return 0, fmt.Errorf("bad scope: %s", s)
	}
}

func (s Scope) String() string {
	switch s {
	case ScopeBase:
		return "base"
	case ScopeSub:
		return "sub"
	case ScopeOne:
		return "one"
	default:
		return "!INVALID"
	}
}

// Deref tells when alias entries are resolved to their target during a
// search. Values match PHP's LDAP_DEREF_* constants.
type Deref int

const (
	DerefNever     Deref = 0
	DerefSearching Deref = 1
	DerefFinding   Deref = 2
	DerefAlways    Deref = 3
)

func ParseDeref(s string) (Deref, error) {
	switch s {
	case "never":
		return DerefNever, nil
	case "search":
		return DerefSearching, nil
	case "find":
		return DerefFinding, nil
	case "always":
		return DerefAlways, nil
	default:
		return 0, fmt.Errorf("bad deref: %s", s)
	}
}

func (d Deref) String() string {
	switch d {
	case DerefNever:
		return "never"
	case DerefSearching:
		return "search"
	case DerefFinding:
		return "find"
	case DerefAlways:
		return "always"
	default:
		return "!INVALID"
	}
}

// ldap returns the dereferencing constant sent on the wire. Dereferencing
// during name resolution is not supported, so find behaves like never.
func (d Deref) ldap() int {
	switch d {
	case DerefSearching:
		return ldap3.DerefInSearching
	case DerefAlways:
		return ldap3.DerefAlways
	default:
		return ldap3.NeverDerefAliases
	}
}
