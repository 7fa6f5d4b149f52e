package mediatype

import (
	"sort"
	"strings"
)

// PriorityCompare orders two descriptors by reliability so the most
// authoritative match for a lookup sorts first. Descriptors with different
// simplified keys order lexically by key; within a key the first
// discriminating criterion wins:
//
//  1. registered before unregistered
//  2. complete (has extensions) before incomplete
//  3. current before obsolete
//  4. obsolete with a replacement before obsolete without
//  5. replacement names compared lexically
//
// Ties report 0 and leave the outcome to sort stability.
func PriorityCompare(a, b *Type) int {
	if c := strings.Compare(a.simplified, b.simplified); c != 0 {
		return c
	}
	if a.registered != b.registered {
		if a.registered {
			return -1
		}
		return 1
	}
	if ac, bc := a.Complete(), b.Complete(); ac != bc {
		if ac {
			return -1
		}
		return 1
	}
	if a.obsolete != b.obsolete {
		if !a.obsolete {
			return -1
		}
		return 1
	}
	if a.obsolete {
		aHas, bHas := a.useInstead != "", b.useInstead != ""
		if aHas != bHas {
			if aHas {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.useInstead, b.useInstead); c != 0 {
			return c
		}
	}
	return 0
}

// SortByPriority stably sorts descriptors in place using PriorityCompare.
func SortByPriority(types []*Type) {
	sort.SliceStable(types, func(i, j int) bool {
		return PriorityCompare(types[i], types[j]) < 0
	})
}
