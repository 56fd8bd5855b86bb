package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5215512345678", "+5215512345678"},
		{"+5215512345678", "+5215512345678"},
		{"52 155 1234 5678", "+5215512345678"},
		{"52-155-1234-5678", "+5215512345678"},
		{"(52) 155 1234 5678", "+5215512345678"},
		{"", ""},
		{"abc", ""},
	}

	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
