package clickfunnels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"cf:options:getTeams":                        "cf.options.getTeams",
		"cf:options:getTags:subdomain=my-shop&ws=42": "cf.options.getTags.subdomain=my-shop_ws=42",
		"::leading::and::trailing::":                 "leading.and.trailing",
		"spaces and *wildcards>":                     "spaces_and__wildcards_",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, sanitizeKVKey(input), input)
	}
}
