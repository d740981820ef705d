package provider

import "strings"

// Intner is the subset of *rand.Rand used for key selection
type Intner interface {
	Intn(n int) int
}

// SplitKeys parses a comma-separated key list. One trailing comma is ignored
// and every entry is trimmed; empty entries in the middle are kept.
func SplitKeys(raw string) []string {
	raw = strings.TrimSuffix(raw, ",")
	keys := strings.Split(raw, ",")
	for i, k := range keys {
		keys[i] = strings.TrimSpace(k)
	}
	return keys
}

// PickKey chooses one key uniformly at random. This spreads load across keys;
// it is not a failover mechanism.
func PickKey(raw string, rnd Intner) string {
	keys := SplitKeys(raw)
	return keys[rnd.Intn(len(keys))]
}
