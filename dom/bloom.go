package dom

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// classBloom is a fixed-width bloom filter over an element's class list,
// used to fast-reject class selectors during querySelectorAll without
// tokenizing and comparing the full class attribute on every candidate.
type classBloom uint64

const bloomHashRounds = 4

func bloomHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// addClass folds a single class name into the filter.
func (b classBloom) addClass(class string) classBloom {
	h := bloomHash(class)
	for i := 0; i < bloomHashRounds; i++ {
		bit := (h >> (uint(i) * 16)) % 64
		b |= 1 << bit
	}
	return b
}

// mayContainClass reports whether the filter might contain class; a false
// result is a guarantee of absence, a true result requires confirmation
// against the actual class list.
func (b classBloom) mayContainClass(class string) bool {
	h := bloomHash(class)
	for i := 0; i < bloomHashRounds; i++ {
		bit := (h >> (uint(i) * 16)) % 64
		if b&(1<<bit) == 0 {
			return false
		}
	}
	return true
}

// buildClassBloom recomputes the bloom filter for a whitespace-separated
// class attribute value.
func buildClassBloom(classAttr string) classBloom {
	var b classBloom
	for _, tok := range strings.Fields(classAttr) {
		b = b.addClass(tok)
	}
	return b
}
