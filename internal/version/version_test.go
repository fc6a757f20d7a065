package version

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want []string
		not  []string
	}{
		{
			name: "dev build",
			info: Info{Version: "dev", Commit: unknown, Date: unknown, GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want: []string{"polycue version dev", "go1.25.1", "linux/amd64"},
			not:  []string{"commit:"},
		},
		{
			name: "release build",
			info: Info{Version: "1.2.3", Commit: "0123456789abcdef", Date: "2025-01-31T14:05:09Z", GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want: []string{"polycue version 1.2.3", "commit: 01234567,", "built: 2025-01-31T14:05:09Z"},
		},
		{
			name: "short commit",
			info: Info{Version: "1.2.3", Commit: "abc", Date: "2025-01-31", GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want: []string{"commit: abc,"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("String() = %q, missing %q", got, w)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(got, n) {
					t.Errorf("String() = %q, should not contain %q", got, n)
				}
			}
		})
	}
}

func TestInfoJSON(t *testing.T) {
	data, err := GetInfo().JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"version", "commit", "date", "go_version", "platform"} {
		if _, ok := got[key]; !ok {
			t.Errorf("JSON missing %q", key)
		}
	}
}

func TestShort(t *testing.T) {
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
