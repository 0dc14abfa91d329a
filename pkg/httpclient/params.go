package httpclient

import (
	"fmt"

	"github.com/spf13/cast"
)

// Params carries request parameters keyed by name. Values are expected to be scalars.
type Params map[string]any

// Merge returns a new Params holding p overlaid with other. Neither input is modified.
func (p Params) Merge(other Params) Params {
	out := make(Params, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Strings renders every value in its wire form.
func (p Params) Strings() map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		s, err := cast.ToStringE(v)
		if err != nil {
			s = fmt.Sprint(v)
		}
		out[k] = s
	}
	return out
}
