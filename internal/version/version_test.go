package version

import "testing"

func TestString(t *testing.T) {
	defer func(v, sha, bt string) { Version, GitSHA, BuildTime = v, sha, bt }(Version, GitSHA, BuildTime)

	Version, GitSHA, BuildTime = "1.2.3", "abc123", "2026-01-01"
	if got, want := String(), "terrain-core 1.2.3 (abc123, built 2026-01-01)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
