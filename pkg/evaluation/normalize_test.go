package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "She Has FEVER", "she has fever"},
		{"strips punctuation runs", "fever, chills!! and... pain?", "fever chills and pain"},
		{"collapses whitespace", "fever   and \t chills", "fever and chills"},
		{"trims", "  fever  ", "fever"},
		{"trailing punctuation", "she has a fever.", "she has a fever"},
		{"hyphens become spaces", "follow-up visit", "follow up visit"},
		{"apostrophes", "she doesn't eat", "she doesn t eat"},
		{"empty", "", ""},
		{"only punctuation", "?!.,", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"She has a mild fever, but no bleeding noted!",
		"  multiple   spaces  ",
		"already normalized text",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
