package util

import "testing"

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"jane@example.com", "j***@example.com"},
		{"j@example.com", "*@example.com"},
		{"not-an-email", "n***********"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MaskEmail(tc.in); got != tc.want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMaskPhone(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"+4915112345678", "**********5678"},
		{"1234", "****"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MaskPhone(tc.in); got != tc.want {
			t.Fatalf("MaskPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
