package catalog

// hashSeed and hashMultiplier are the djb2 constants.
const (
	hashSeed       uint64 = 5381
	hashMultiplier uint64 = 33
)

// CaseFold lowercases s byte by byte.
//
// Only ASCII 'A'-'Z' are mapped. Every other byte, including each byte of a
// multi-byte UTF-8 sequence, is copied unchanged, so the result always has the
// same length as s and does not depend on the platform locale.
//
// Example:
//
//	CaseFold("AC/DC")   // "ac/dc"
//	CaseFold("BJÖRK")   // "bjÖrk" (non-ASCII left alone)
func CaseFold(s string) string {
	for i := 0; i < len(s); i++ {
		if isUpper(s[i]) {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				b[j] = lower(b[j])
			}
			return string(b)
		}
	}
	return s
}

// EqualFold reports whether a and b are equal after CaseFold.
//
// Strings of different byte length are never equal. Unlike strings.EqualFold
// this does no Unicode case mapping.
func EqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}

// Hash returns the djb2 hash of the case-folded key.
//
// The accumulator starts at 5381 and is updated as acc*33 + c for each byte c
// of CaseFold(key). Overflow wraps around.
func Hash(key string) uint64 {
	acc := hashSeed
	for i := 0; i < len(key); i++ {
		acc = acc*hashMultiplier + uint64(lower(key[i]))
	}
	return acc
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func lower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}
