package parse

import (
	"errors"
	"testing"
)

func TestParseMagnitude(t *testing.T) {
	cases := []struct {
		name    string
		token   string
		want    float64
		wantErr bool
	}{
		{name: "plain_integer", token: "5", want: 5},
		{name: "comma_separated_with_k", token: "1,234k", want: 1234000},
		{name: "decimal_with_g", token: "2.5G", want: 2500000000},
		{name: "lowercase_suffix", token: "10k", want: 10000},
		{name: "uppercase_suffix", token: "10K", want: 10000},
		{name: "mega_suffix", token: "3m", want: 3e6},
		{name: "tera_suffix", token: "1t", want: 1e12},
		{name: "peta_suffix", token: "1P", want: 1e15},
		{name: "zero", token: "0", want: 0},
		{name: "comma_no_suffix", token: "12,345", want: 12345},
		{name: "surrounding_whitespace", token: " 42 ", want: 42},
		{name: "alpha_garbage", token: "abc", wantErr: true},
		{name: "empty", token: "", wantErr: true},
		{name: "suffix_only", token: "k", wantErr: true},
		{name: "negative", token: "-5", wantErr: true},
		{name: "exponent_rejected", token: "1e5", wantErr: true},
		{name: "double_suffix", token: "1kk", wantErr: true},
		{name: "trailing_dot", token: "5.", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMagnitude(tc.token)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tc.token, got)
				}
				var malformed *MalformedNumberError
				if !errors.As(err, &malformed) {
					t.Fatalf("expected MalformedNumberError, got %T", err)
				}
				if malformed.Token != tc.token {
					t.Fatalf("expected offending token %q, got %q", tc.token, malformed.Token)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
