package users

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"
)

// Criteria holds case-insensitive substring constraints. An empty field
// places no constraint on the corresponding user field.
type Criteria struct {
	IDSubstring   string
	NameSubstring string
}

// IsZero reports whether no constraint is set.
func (c Criteria) IsZero() bool {
	return c.IDSubstring == "" && c.NameSubstring == ""
}

// matcher is Criteria with its needles case-folded once.
type matcher struct {
	id, name string
	fold     cases.Caser
}

func (c Criteria) matcher() *matcher {
	fold := cases.Fold()
	return &matcher{
		id:   fold.String(c.IDSubstring),
		name: fold.String(c.NameSubstring),
		fold: fold,
	}
}

func (m *matcher) match(u Summary) bool {
	return m.contains(u.ID, m.id) && m.contains(u.Name, m.name)
}

// contains treats an empty needle as a match. A missing (empty) field never
// contains a non-empty needle.
func (m *matcher) contains(field, needle string) bool {
	if needle == "" {
		return true
	}
	if field == "" {
		return false
	}
	return strings.Contains(m.fold.String(field), needle)
}

// Filter yields the users matching c in their original order. The sequence
// is lazy and may be ranged over any number of times; list is never modified.
func Filter(list []Summary, c Criteria) iter.Seq[Summary] {
	return func(yield func(Summary) bool) {
		if c.IsZero() {
			for _, u := range list {
				if !yield(u) {
					return
				}
			}
			return
		}
		// A Caser is stateful, so each traversal gets its own.
		m := c.matcher()
		for _, u := range list {
			if m.match(u) && !yield(u) {
				return
			}
		}
	}
}
