// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns headings into fragment identifiers for in-page anchors.
// Ids handed out by one Anchors are unique within the page it serves.
package slug

import (
	"strconv"
	"strings"
	"unicode"
)

// Generate lowercases s and joins its words with single hyphens. Letters
// of any script, their combining marks and digits are kept. Apostrophes and
// dots vanish so "India's" and "22.5" stay whole words; anything else
// separates words.
// Example: "Activation Area (22.5 sq km)" → "activation-area-225-sq-km"
func Generate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
		case r == '\'' || r == '’' || r == '.':
		default:
			pending = true
		}
	}
	return b.String()
}

// Anchors hands out fragment ids for one page. The zero value is not
// usable; create one with NewAnchors.
type Anchors struct {
	used map[string]bool
	next map[string]int
}

// NewAnchors creates an allocator that never returns any of the reserved
// ids, typically the fixed section ids already present in the page.
func NewAnchors(reserved ...string) *Anchors {
	a := &Anchors{used: make(map[string]bool, len(reserved)), next: make(map[string]int)}
	for _, id := range reserved {
		a.used[id] = true
	}
	return a
}

// ID returns the fragment id for heading. A heading whose slug is already
// taken gets the first free "-2", "-3", … suffix. A heading with no letters
// or digits gets "".
func (a *Anchors) ID(heading string) string {
	base := Generate(heading)
	if base == "" {
		return ""
	}
	id := base
	for n := max(a.next[base], 2); a.used[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
		a.next[base] = n + 1
	}
	a.used[id] = true
	return id
}
