package phpldap

import (
	"regexp"
	"strings"
)

var (
	openParenRe  = regexp.MustCompile(`\s+\(`)
	closeParenRe = regexp.MustCompile(`\)\s+`)
)

// cleanFilter prepares a PHP-style filter for go-ldap, which is stricter
// than most servers when implementing RFC 4515. No spaces are allowed
// around parenthesises, and the outer parenthesises are mandatory while PHP
// accepts a bare attr=value.
func cleanFilter(filter string) string {
	filter = strings.TrimSpace(filter)
	filter = openParenRe.ReplaceAllLiteralString(filter, "(")
	filter = closeParenRe.ReplaceAllLiteralString(filter, ")")
	if filter != "" && !strings.HasPrefix(filter, "(") {
		filter = "(" + filter + ")"
	}
	return filter
}
