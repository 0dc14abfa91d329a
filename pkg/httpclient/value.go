package httpclient

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Value is an immutable parsed JSON document or a node inside one.
//
// Get walks dotted gjson paths ("results.customer.name"), Field looks up a literal
// object key. Lookups on missing nodes return an empty Value whose Exists is false.
type Value struct {
	res gjson.Result
}

// Parse validates raw and wraps it as a Value.
func Parse(raw []byte) (Value, error) {
	if !gjson.ValidBytes(raw) {
		return Value{}, ErrMalformedJSON
	}
	return Value{res: gjson.ParseBytes(raw)}, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(raw string) Value {
	v, err := Parse([]byte(raw))
	if err != nil {
		panic(fmt.Sprintf("httpclient: %v: %q", err, raw))
	}
	return v
}

// Get returns the node at a gjson path.
func (v Value) Get(path string) Value {
	return Value{res: v.res.Get(path)}
}

// Field returns the member named key of an object, matched literally.
func (v Value) Field(key string) Value {
	if !v.res.IsObject() {
		return Value{}
	}
	var out gjson.Result
	v.res.ForEach(func(k, val gjson.Result) bool {
		if k.String() == key {
			out = val
			return false
		}
		return true
	})
	return Value{res: out}
}

func (v Value) Exists() bool   { return v.res.Exists() }
func (v Value) IsObject() bool { return v.res.IsObject() }
func (v Value) IsArray() bool  { return v.res.IsArray() }
func (v Value) String() string { return v.res.String() }
func (v Value) Int() int64     { return v.res.Int() }
func (v Value) Bool() bool     { return v.res.Bool() }
func (v Value) Raw() string    { return v.res.Raw }

// Truthy reports whether the value is present and neither false nor null.
func (v Value) Truthy() bool {
	if !v.res.Exists() {
		return false
	}
	return v.res.Type != gjson.Null && v.res.Type != gjson.False
}

// Array returns the elements of an array; a non-array yields nil.
func (v Value) Array() []Value {
	if !v.res.IsArray() {
		return nil
	}
	items := v.res.Array()
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = Value{res: item}
	}
	return out
}

// Map returns the members of an object; a non-object yields nil.
func (v Value) Map() map[string]Value {
	if !v.res.IsObject() {
		return nil
	}
	out := make(map[string]Value)
	v.res.ForEach(func(k, val gjson.Result) bool {
		if _, dup := out[k.String()]; !dup {
			out[k.String()] = Value{res: val}
		}
		return true
	})
	return out
}

// Interface converts the value into plain Go types (maps, slices, float64, string, bool, nil).
func (v Value) Interface() any {
	return v.res.Value()
}

// Pretty renders the value as indented JSON.
func (v Value) Pretty() string {
	if !v.res.Exists() {
		return "null"
	}
	return v.res.Get("@pretty").Raw
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.res.Exists() {
		return []byte("null"), nil
	}
	return []byte(v.res.Raw), nil
}

func (v *Value) UnmarshalJSON(raw []byte) error {
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
