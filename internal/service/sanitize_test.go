package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Alice ", "Alice"},
		{"<b>Bob</b>", "Bob"},
		{"Tom & Jerry", "Tom & Jerry"},
		{"O'Brien", "O'Brien"},
		{`say "hi"`, `say "hi"`},
		{"<i>O'Brien & Co</i>", "O'Brien & Co"},
		{"<p></p>", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, CleanText(tc.in))
		})
	}
}
