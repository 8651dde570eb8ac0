package expression

import (
	"strings"

	"github.com/oliveagle/jsonpath"
)

// evaluateJsonPath looks a path such as $.order.items[0] up in the input values.
// Paths may be written with or without the surrounding braces.
func evaluateJsonPath(content string, values map[string]any) (any, error) {
	path := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(content), "{"), "}")
	data := make(map[string]interface{}, len(values))
	for k, v := range values {
		data[k] = v
	}
	return jsonpath.JsonPathLookup(data, path)
}
