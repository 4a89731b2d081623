package cmd

import (
	"strconv"
	"strings"

	"github.com/phpldap/phpldap"
)

// PrintR renders entries in PHP print_r notation, for eyeballing the exact
// shape a PHP script reads from ldap_get_entries.
func PrintR(entries *phpldap.Entries) string {
	b := &strings.Builder{}
	b.WriteString("Array\n(\n")
	writePair(b, 1, "count", strconv.Itoa(entries.Count))
	for i := 0; i < entries.Count; i++ {
		writeEntry(b, 1, i, entries.Entry(i))
	}
	b.WriteString(")\n")
	return b.String()
}

// writeEntry keeps PHP's insertion order: count, dn, then each attribute
// value array followed by its positional name.
func writeEntry(b *strings.Builder, indent, i int, entry phpldap.Entry) {
	openArray(b, indent, strconv.Itoa(i))
	body := indent + 2
	writePair(b, body, "count", strconv.Itoa(entry.Count))
	writePair(b, body, "dn", entry.DN)
	for j, name := range entry.Names {
		writeValues(b, body, name, entry.Attr(name))
		writePair(b, body, strconv.Itoa(j), name)
	}
	closeArray(b, indent)
}

func writeValues(b *strings.Builder, indent int, name string, values phpldap.Values) {
	openArray(b, indent, name)
	body := indent + 2
	writePair(b, body, "count", strconv.Itoa(values.Count))
	for k, value := range values.Vals {
		writePair(b, body, strconv.Itoa(k), value)
	}
	closeArray(b, indent)
}

func openArray(b *strings.Builder, indent int, key string) {
	b.WriteString(pad(indent) + "[" + key + "] => Array\n")
	b.WriteString(pad(indent+1) + "(\n")
}

func closeArray(b *strings.Builder, indent int) {
	b.WriteString(pad(indent+1) + ")\n\n")
}

func writePair(b *strings.Builder, indent int, key, value string) {
	b.WriteString(pad(indent) + "[" + key + "] => " + value + "\n")
}

func pad(indent int) string {
	return strings.Repeat("    ", indent)
}
