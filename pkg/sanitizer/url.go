package sanitizer

import (
	"net/url"
	"strings"
)

// NormalizeLink returns link with a lower-cased scheme and host, or "" when it
// is not an absolute http(s) URL.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}

	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Host = strings.ToLower(u.Host)

	return u.String()
}
