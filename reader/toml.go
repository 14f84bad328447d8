package reader

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vegasq/flatcat/document"
)

// parseTOML decodes a TOML document. Decoding goes through a map, so key
// order is recovered from the order the decoder first met each key.
func parseTOML(data []byte) (*document.Node, error) {
	var v map[string]any
	md, err := toml.Decode(string(data), &v)
	if err != nil {
		return nil, err
	}

	rank := make(map[string]int)
	for i, key := range md.Keys() {
		id := strings.Join(key, "\x00")
		if _, ok := rank[id]; !ok {
			rank[id] = i
		}
	}

	order := func(path []string, m map[string]any) []string {
		keys := document.SortedKeys(m)
		pos := func(k string) int {
			id := strings.Join(append(path[:len(path):len(path)], k), "\x00")
			if r, ok := rank[id]; ok {
				return r
			}
			return len(rank)
		}
		sort.SliceStable(keys, func(i, j int) bool { return pos(keys[i]) < pos(keys[j]) })
		return keys
	}

	return document.FromValue(v, order)
}
