package script

import (
	"fmt"
	"log"
	"os"

	"go.starlark.net/starlark"
)

// Exec runs a Starlark script with inputs predeclared and returns the globals it
// defines as native Go values. Globals of unsupported types are left out.
func Exec(threadName string, script string, inputs map[string]interface{}) (map[string]interface{}, error) {
	thread := &starlark.Thread{Name: threadName, Print: func(t *starlark.Thread, msg string) { log.Printf("[%s] %s", t.Name, msg) }}

	predeclared := starlark.StringDict{}
	for k, v := range inputs {
		val, err := toStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", k, err)
		}
		predeclared[k] = val
	}

	resultGlobals, err := starlark.ExecFile(thread, threadName, script, predeclared)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{})
	for k, v := range resultGlobals {
		if native := FromStarlarkValue(v); native != nil {
			out[k] = native
		}
	}
	return out, nil
}

// ExecFile reads and runs the script at path.
func ExecFile(path string, inputs map[string]interface{}) (map[string]interface{}, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Exec(path, string(src), inputs)
}

// Helpers for type conversion
func toStarlarkValue(v interface{}) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	}
	return starlark.None, fmt.Errorf("unsupported type: %T", v)
}

// FromStarlarkValue converts scalars and tuples/lists of scalars. Anything else is nil.
func FromStarlarkValue(v starlark.Value) interface{} {
	switch val := v.(type) {
	case starlark.String:
		return string(val)
	case starlark.Int:
		i, _ := val.Int64()
		return int(i)
	case starlark.Float:
		return float64(val)
	case starlark.Bool:
		return bool(val)
	case starlark.Tuple:
		return fromIterable(val)
	case *starlark.List:
		return fromIterable(val)
	}
	return nil
}

func fromIterable(v starlark.Iterable) []interface{} {
	out := []interface{}{}
	it := v.Iterate()
	defer it.Done()
	var x starlark.Value
	for it.Next(&x) {
		out = append(out, FromStarlarkValue(x))
	}
	return out
}
