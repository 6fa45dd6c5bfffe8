package utils

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

// OrderedMapToString converts an orderedmap to a string.
// Example: {cover: "a", tall: true} => "[cover=a tall=true]".
func OrderedMapToString(data orderedmap.OrderedMap[string, any]) string {
	dataString := "["
	count := data.Len()
	for _, key := range data.Keys() {
		v, _ := data.Get(key)
		dataString += fmt.Sprintf("%s=%v", key, v)

		count--
		if count > 0 {
			dataString += " "
		}
	}
	dataString += "]"

	return dataString
}

// KeyValsToString formats slog-style keyvals into a single bracketed string.
// Example: KeyValsToString("foo", 1, "bar", true) => "[foo=1 bar=true]".
// If an odd number of values is provided, the last value is ignored.
func KeyValsToString(kv []any) string {
	if len(kv) < 2 {
		return "[]"
	}
	dataString := "["
	pairCount := len(kv) / 2
	for i := range pairCount {
		if i > 0 {
			dataString += " "
		}
		key, val := kv[i*2], kv[i*2+1]
		keyStr, ok := key.(string)
		if !ok {
			keyStr = fmt.Sprintf("%v", key)
		}
		dataString += fmt.Sprintf("%s=%v", keyStr, val)
	}
	dataString += "]"
	return dataString
}
