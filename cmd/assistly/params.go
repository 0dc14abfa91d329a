package main

import (
	"fmt"
	"strings"

	"github.com/samvad-hq/assistly-go/pkg/httpclient"
)

// parsePairs turns repeated key=value flags into request params. Later keys win.
func parsePairs(pairs []string) (httpclient.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(httpclient.Params, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid pair %q (expected key=value)", pair)
		}
		out[key] = value
	}
	return out, nil
}
