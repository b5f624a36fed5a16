package secret

import "testing"

func TestCleanBase64(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "aGVsbG8=", want: "aGVsbG8="},
		{name: "interior newline", in: "aGVs\nbG8=", want: "aGVsbG8="},
		{name: "crlf", in: "aGVs\r\nbG8=\r\n", want: "aGVsbG8="},
		{name: "spaces and tabs", in: "  aGVs \tbG8= ", want: "aGVsbG8="},
		{name: "whitespace only", in: " \n\r\t", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanBase64(tt.in); got != tt.want {
				t.Fatalf("CleanBase64(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
