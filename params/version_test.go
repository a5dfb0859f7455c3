package params

import "testing"

func TestVersionWithCommit(t *testing.T) {
	tests := []struct {
		commit, date, want string
	}{
		{"", "", VersionWithMeta},
		{"abc", "", VersionWithMeta},
		{"0123456789abcdef", "20261019", VersionWithMeta + "-01234567"},
	}
	for _, tt := range tests {
		if have := VersionWithCommit(tt.commit, tt.date); have != tt.want {
			t.Errorf("VersionWithCommit(%q, %q) = %q, want %q", tt.commit, tt.date, have, tt.want)
		}
	}
}
