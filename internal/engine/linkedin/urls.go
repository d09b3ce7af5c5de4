package linkedin

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultBaseURL is the public LinkedIn origin.
const DefaultBaseURL = "https://www.linkedin.com"

// ErrInvalidProfile is returned for input that names no profile.
var ErrInvalidProfile = errors.New("linkedin: not a profile URL or username")

// usernameRe matches a public profile slug.
var usernameRe = regexp.MustCompile(`^[\p{L}\p{N}\-_.%]{2,100}$`)

// ProfileURL returns the canonical profile URL for a username, an "/in/<slug>" path or a
// full profile URL on any LinkedIn host. The result always ends in a slash.
func ProfileURL(baseURL, input string) (string, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidProfile
	}

	slug := s
	if strings.Contains(s, "/") {
		if !strings.Contains(s, "://") && !strings.HasPrefix(s, "/") {
			s = "https://" + s
		}
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
		if u.Host != "" && !strings.HasSuffix(strings.ToLower(u.Hostname()), "linkedin.com") {
			return "", fmt.Errorf("%w: host %s", ErrInvalidProfile, u.Host)
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "in" {
			return "", fmt.Errorf("%w: %s", ErrInvalidProfile, input)
		}
		slug = parts[1]
	}
	slug = strings.TrimPrefix(slug, "@")
	if !usernameRe.MatchString(slug) {
		return "", fmt.Errorf("%w: %q", ErrInvalidProfile, slug)
	}
	return baseURL + "/in/" + slug + "/", nil
}

// PageURL joins a profile URL and a sub-page path such as "details/experience/".
func PageURL(profileURL, path string) string {
	return strings.TrimRight(profileURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// SearchURL is the content search results page for keyword.
func SearchURL(baseURL, keyword string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	q := strings.ReplaceAll(url.QueryEscape(strings.TrimSpace(keyword)), "+", "%20")
	return strings.TrimRight(baseURL, "/") + "/search/results/content/?keywords=" + q + "&origin=SWITCH_SEARCH_VERTICAL"
}
