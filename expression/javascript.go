package expression

import (
	"github.com/dop251/goja"
)

// evaluateJavascript runs the script in a fresh runtime; input values are global
// variables and are also reachable through $. The value of the last statement is returned.
func evaluateJavascript(content string, values map[string]any) (any, error) {
	vm := goja.New()
	for k, v := range values {
		if err := vm.Set(k, v); err != nil {
			return nil, err
		}
	}
	if err := vm.Set("$", values); err != nil {
		return nil, err
	}
	val, err := vm.RunString(content)
	if err != nil {
		return nil, err
	}
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil, nil
	}
	return val.Export(), nil
}
