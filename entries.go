package phpldap

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	ldap3 "github.com/go-ldap/ldap/v3"
)

// Result holds the raw entries of one search. The protocol answer is
// drained eagerly at search time, so a Result never touches the network
// again and is immutable once built.
type Result struct {
	entries   []*ldap3.Entry
	attrsOnly bool
}

// Count returns the number of raw entries.
func (r *Result) Count() int {
	return len(r.entries)
}

// Entries is the canonical nested shape of PHP's ldap_get_entries return
// value. In PHP array syntax:
//
//	entries["count"]              number of entries
//	entries[i]                    ith entry, insertion order preserved
//	entries[i]["dn"]              DN of the ith entry
//	entries[i]["count"]           number of attributes of the ith entry
//	entries[i][j]                 name of the jth attribute, lower cased
//	entries[i][attr]["count"]     number of values of attr
//	entries[i][attr][k]           kth value of attr
type Entries struct {
	Count int
	items []Entry
}

// Entry returns the ith entry. Out of range yields a zero Entry, the PHP
// way of reading an absent index.
func (e *Entries) Entry(i int) Entry {
	if i < 0 || i >= len(e.items) {
		return Entry{}
	}
	return e.items[i]
}

// Entry is one directory object in canonical form.
type Entry struct {
	DN string
	// Count is the number of distinct attributes after case folding.
	Count int
	// Names holds the attribute names, lower cased, in discovery order.
	Names []string
	attrs map[string]Values
}

// Name returns the jth attribute name, or "" out of range.
func (e Entry) Name(j int) string {
	if j < 0 || j >= len(e.Names) {
		return ""
	}
	return e.Names[j]
}

// Attr returns the value record of one attribute, matching any case. A
// name the directory never returned yields a zero count, not a fault.
func (e Entry) Attr(name string) Values {
	return e.attrs[strings.ToLower(name)]
}

// Values lists the values of one attribute. Count is zero when the search
// requested attribute names only.
type Values struct {
	Count int
	Vals  []string
}

// Value returns the kth value as a string, or "" out of range.
func (v Values) Value(k int) string {
	if k < 0 || k >= len(v.Vals) {
		return ""
	}
	return v.Vals[k]
}

// normalize converts the raw entries into the canonical nested shape.
// Attribute names are folded to lower case; names differing only in case
// share one slot, the later attribute winning while keeping the earlier
// position. Order is the order the directory answered in, never re-sorted.
func (r *Result) normalize() *Entries {
	out := Entries{Count: len(r.entries)}
	out.items = make([]Entry, 0, len(r.entries))
	for _, raw := range r.entries {
		entry := Entry{
			DN:    raw.DN,
			attrs: make(map[string]Values, len(raw.Attributes)),
		}
		seen := mapset.NewSet[string]()
		for _, attr := range raw.Attributes {
			name := strings.ToLower(attr.Name)
			var values Values
			if !r.attrsOnly {
				values = Values{Count: len(attr.Values), Vals: attr.Values}
			}
			if seen.Add(name) {
				entry.Names = append(entry.Names, name)
			}
			entry.attrs[name] = values
		}
		entry.Count = len(entry.Names)
		out.items = append(out.items, entry)
	}
	return &out
}
