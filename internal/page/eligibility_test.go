package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible(t *testing.T) {
	doc, err := ParseString(resultsPage, "https://www.google.com/search?q=golang")
	require.NoError(t, err)
	rule := DefaultEligibility()
	require.NoError(t, rule.Validate())

	tests := []struct {
		href string
		want bool
	}{
		{"/preferences", false},
		{"https://go.dev/", true},
		{"https://pkg.go.dev/std", true},
		{"https://maps.google.com/?q=go", false},
		{"javascript:void(0)", false},
		{"ftp://files.example.com/", false},
		{"https://example.com/outside", false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			link, ok := doc.FindHref(tt.href)
			require.True(t, ok)
			assert.Equal(t, tt.want, rule.Eligible(link))
		})
	}
}

func TestIsSelfHost(t *testing.T) {
	rule := DefaultEligibility()

	assert.True(t, rule.IsSelfHost("google.com"))
	assert.True(t, rule.IsSelfHost("www.google.co.uk"))
	assert.True(t, rule.IsSelfHost("WWW.GOOGLE.DE"))
	assert.False(t, rule.IsSelfHost("go.dev"))
	assert.False(t, rule.IsSelfHost("googleblog.example"))
}

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://example.com"))
	assert.True(t, ValidURL("http://example.com/a?b=c"))
	assert.False(t, ValidURL(""))
	assert.False(t, ValidURL("/relative"))
	assert.False(t, ValidURL("mailto:a@example.com"))
	assert.False(t, ValidURL("https://"))
}

func TestEligibleNil(t *testing.T) {
	assert.False(t, DefaultEligibility().Eligible(nil))
}

func TestValidateRejectsBadPattern(t *testing.T) {
	rule := Eligibility{Containers: DefaultContainers, SelfHosts: []string{"[unclosed"}}
	assert.Error(t, rule.Validate())
}
