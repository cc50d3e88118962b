// Package prefixes models vendor prefixes and decides which of them the
// configured browser targets still need.
package prefixes

import "strings"

// VendorPrefix is a set of vendor prefixes a declaration is written with.
type VendorPrefix uint8

const (
	None VendorPrefix = 1 << iota
	WebKit
	Moz
	O
	Ms
)

// Empty set, used for "nothing left" in merge bookkeeping.
const Empty VendorPrefix = 0

// All prefixes in output order.
var order = [...]VendorPrefix{WebKit, Moz, O, Ms, None}

var names = map[VendorPrefix]string{
	None:   "none",
	WebKit: "webkit",
	Moz:    "moz",
	O:      "o",
	Ms:     "ms",
}

// Contains reports whether every bit of o is in vp.
func (vp VendorPrefix) Contains(o VendorPrefix) bool {
	return vp&o == o
}

// Intersects reports whether vp and o share any prefix.
func (vp VendorPrefix) Intersects(o VendorPrefix) bool {
	return vp&o != 0
}

func (vp VendorPrefix) Union(o VendorPrefix) VendorPrefix {
	return vp | o
}

func (vp VendorPrefix) Intersect(o VendorPrefix) VendorPrefix {
	return vp & o
}

// Remove returns vp without prefixes of o.
func (vp VendorPrefix) Remove(o VendorPrefix) VendorPrefix {
	return vp &^ o
}

func (vp VendorPrefix) IsEmpty() bool {
	return vp == 0
}

// Each returns individual prefixes of vp in output order: WebKit, Moz, O,
// Ms and unprefixed last.
func (vp VendorPrefix) Each() []VendorPrefix {
	out := make([]VendorPrefix, 0, len(order))
	for _, p := range order {
		if vp.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// Prefix returns the property name prefix for a single prefix value, for
// example "-webkit-". Unprefixed and combined sets return empty string.
func (vp VendorPrefix) Prefix() string {
	switch vp {
	case WebKit, Moz, O, Ms:
		return "-" + names[vp] + "-"
	default:
		return ""
	}
}

func (vp VendorPrefix) String() string {
	if vp.IsEmpty() {
		return "empty"
	}
	parts := make([]string, 0, len(order))
	for _, p := range vp.Each() {
		parts = append(parts, names[p])
	}
	return strings.Join(parts, "|")
}

// ParseName maps a prefix name as used in configuration ("webkit", "moz",
// "o", "ms", "none") to its value.
func ParseName(name string) (VendorPrefix, bool) {
	for vp, n := range names {
		if strings.EqualFold(n, name) {
			return vp, true
		}
	}
	return Empty, false
}

// ParsePropertyName splits a vendor prefix off a property or at-rule name:
// "-webkit-transform" is ("transform", WebKit). Names without a known
// prefix are returned lower-cased with None.
func ParsePropertyName(name string) (string, VendorPrefix) {
	lower := strings.ToLower(name)
	for _, p := range order {
		if pfx := p.Prefix(); pfx != "" && strings.HasPrefix(lower, pfx) {
			return lower[len(pfx):], p
		}
	}
	return lower, None
}
