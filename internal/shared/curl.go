// Utilities for translating between header flags and cURL commands.
package shared

import (
	"fmt"
	"sort"
	"strings"
)

// ParseHeaderFlags converts repeated "Key: Value" flag values into a header map.
//
// Authorization headers are rejected since the session token is attached by the client.
func ParseHeaderFlags(lines []string) (map[string]string, error) {
	headers := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: header %q must look like 'Key: Value'", ErrInvalidArgument, line)
		}
		if strings.EqualFold(key, "authorization") {
			return nil, fmt.Errorf("%w: authorization header is managed by the session", ErrInvalidArgument)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}

// CurlCommand renders an equivalent cURL invocation for a request.
//
// The bearer token is masked so the output can be pasted into bug reports.
func CurlCommand(method, url string, headers map[string]string, body []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s %s", method, quoteShell(url))

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := headers[k]
		if strings.EqualFold(k, "authorization") {
			v = "Bearer ***"
		}
		fmt.Fprintf(&b, " \\\n  -H %s", quoteShell(k+": "+v))
	}

	if len(body) > 0 {
		fmt.Fprintf(&b, " \\\n  -d %s", quoteShell(string(body)))
	}
	return b.String()
}

func quoteShell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
