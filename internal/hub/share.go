package hub

import (
	"net/url"
	"strings"
)

// KeyPlaceholder stands in for the real token in displayed share links.
const KeyPlaceholder = "<your_api_key>"

// ShareLink builds the public hub URL carrying the given access token.
func ShareLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/model_hub?key=" + url.QueryEscape(token)
}

// ShareLinkTemplate is the display form of the share link with a placeholder
// key, safe to render and log.
func ShareLinkTemplate(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/model_hub?key=" + KeyPlaceholder
}
