package page

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultContainers matches the result blocks of a search results page.
const DefaultContainers = "#search, #rso, .g, [data-hveid], .yuRUbf, .tF2Cxc"

// DefaultSelfHosts matches the search engine's own hosts.
var DefaultSelfHosts = []string{"{google.*,*.google.*}"}

// Eligibility decides which links may start a hover session.
type Eligibility struct {
	Containers string
	SelfHosts  []string
}

// DefaultEligibility returns the rule for Google results pages.
func DefaultEligibility() Eligibility {
	return Eligibility{
		Containers: DefaultContainers,
		SelfHosts:  append([]string(nil), DefaultSelfHosts...),
	}
}

// Validate checks the host patterns.
func (e Eligibility) Validate() error {
	for _, p := range e.SelfHosts {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid host pattern %q", p)
		}
	}
	return nil
}

// Eligible reports whether link may be previewed: it targets an absolute
// http(s) URL on a foreign host and sits inside a results container.
func (e Eligibility) Eligible(link *Link) bool {
	if link == nil || !ValidURL(link.Href) {
		return false
	}
	if e.IsSelfHost(link.Host()) {
		return false
	}
	return link.Within(e.Containers)
}

// IsSelfHost reports whether host belongs to the search engine itself.
func (e Eligibility) IsSelfHost(host string) bool {
	host = strings.ToLower(host)
	for _, p := range e.SelfHosts {
		if ok, err := doublestar.Match(p, host); err == nil && ok {
			return true
		}
	}
	return false
}

// ValidURL reports whether href is an absolute http or https URL.
func ValidURL(href string) bool {
	if href == "" {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
