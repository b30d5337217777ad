package types

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// GeneratePoolId derives a deterministic, replica-independent pool id from a
// pair of denoms: "pool" || hex(sha256(sort_lex(denoms).concat_no_sep())).
// Sorting before hashing means the id is the same regardless of which side
// calls CreatePool with the denoms in which order (testable property: pool
// id determinism under denom reversal).
func GeneratePoolId(denomA, denomB string) string {
	denoms := []string{denomA, denomB}
	sort.Strings(denoms)
	h := sha256.Sum256([]byte(strings.Join(denoms, "")))
	return "pool" + hex.EncodeToString(h[:])
}
