package helpers

import (
	"fmt"
	"net/url"
	"strings"
)

// SetQueryParam sets key=value on an absolute URL. The first existing occurrence of
// key is replaced in place, later ones are dropped, and every other parameter keeps
// its position and encoding. A missing key is appended.
func SetQueryParam(rawURL, key, value string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: not absolute", rawURL)
	}

	pair := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	var parts []string
	replaced := false
	if u.RawQuery != "" {
		for _, part := range strings.Split(u.RawQuery, "&") {
			name := part
			if i := strings.IndexByte(part, '='); i >= 0 {
				name = part[:i]
			}
			if k, err := url.QueryUnescape(name); err == nil && k == key {
				if !replaced {
					parts = append(parts, pair)
					replaced = true
				}
				continue
			}
			parts = append(parts, part)
		}
	}
	if !replaced {
		parts = append(parts, pair)
	}

	u.RawQuery = strings.Join(parts, "&")
	return u.String(), nil
}

// EncodeQuery encodes key/value pairs in the given order.
func EncodeQuery(pairs ...[2]string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, url.QueryEscape(p[0])+"="+url.QueryEscape(p[1]))
	}
	return strings.Join(parts, "&")
}
