package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Electric Socket SPARKING", "electric socket sparking"},
		{"strips digits and punctuation", "room #12: AC not working!!!", "room ac not working"},
		{"collapses whitespace", "  water \t leaking \n from ceiling  ", "water leaking from ceiling"},
		{"non ascii replaced", "fuite d'eau très grave", "fuite d eau tr s grave"},
		{"only symbols", "1234 !!! ###", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeText(tc.in))
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	in := "Electric socket SPARKING near bed #3"
	once := NormalizeText(in)
	assert.Equal(t, once, NormalizeText(once))
}
