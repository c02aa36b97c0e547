package logging

import (
	"net/url"
	"strings"
)

// RedactURL masks credential-bearing parts of a URL for logging. Userinfo is
// dropped and the "key" query value (share-link access token) is replaced
// with a placeholder; other query params are preserved. Strings with nothing
// to redact pass through byte-identical, never re-encoded.
func RedactURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	changed := false
	if u.User != nil {
		u.User = nil
		changed = true
	}
	if u.Fragment != "" {
		u.Fragment = ""
		changed = true
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "<redacted>")
		u.RawQuery = q.Encode()
		changed = true
	}
	if !changed {
		return s
	}
	return u.String()
}
