//go:build !windows

package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"letter.wri", "letter.wri"},
		{"a/b:c", "abc"},
		{"..hidden", "hidden"},
		{"  title\twith\x01controls ", "titlewithcontrols"},
		{"Книга", "Книга"},
		{"/", "_bad_file_name_"},
		{"", "_bad_file_name_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanFileName(tt.in); got != tt.want {
				t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
