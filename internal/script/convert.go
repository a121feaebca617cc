package script

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// ToGo converts a Lua value into plain Go data. Sequences become []any,
// other tables map[string]any, numbers float64 and functions *Function.
func ToGo(v lua.LValue) any {
	switch val := v.(type) {
	case nil:
		return nil
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		return float64(val)
	case lua.LString:
		return string(val)
	case *lua.LFunction:
		return &Function{fn: val}
	case *lua.LTable:
		return tableToGo(val)
	default:
		return v.String()
	}
}

func tableToGo(t *lua.LTable) any {
	n := t.MaxN()
	count := 0
	t.ForEach(func(lua.LValue, lua.LValue) { count++ })

	if n > 0 && n == count {
		out := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			out = append(out, ToGo(t.RawGetInt(i)))
		}
		return out
	}

	out := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		out[keyString(k)] = ToGo(v)
	})
	return out
}

func keyString(k lua.LValue) string {
	if s, ok := k.(lua.LString); ok {
		return string(s)
	}
	return k.String()
}

// FromGo converts Go data produced by ToGo, or built by callers, back into a
// Lua value owned by L.
func FromGo(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case *Function:
		if val == nil || val.fn == nil {
			return lua.LNil
		}
		return val.fn
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case []string:
		t := L.NewTable()
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	case []any:
		t := L.NewTable()
		for _, item := range val {
			t.Append(FromGo(L, item))
		}
		return t
	case map[string]string:
		t := L.NewTable()
		for _, k := range sortedKeys(val) {
			t.RawSetString(k, lua.LString(val[k]))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for _, k := range sortedKeys(val) {
			t.RawSetString(k, FromGo(L, val[k]))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(v))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
