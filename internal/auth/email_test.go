package auth

import "testing"

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"simple", "user@example.com", true},
		{"subdomain", "user@sub.domain.com", true},
		{"plus tag", "user+tag@example.com", true},
		{"dotted local", "first.last@example.org", true},
		{"missing domain", "nouser@", false},
		{"missing at sign", "no-at-sign.com", false},
		{"domain without dot", "user@domain", false},
		{"numeric tld", "user@example.12", false},
		{"single letter tld", "user@example.c", false},
		{"empty", "", false},
		{"missing local part", "@example.com", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsValidEmail(tc.candidate); got != tc.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tc.candidate, got, tc.want)
			}
		})
	}
}
