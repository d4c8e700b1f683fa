package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vvka-141/mdsource/pkg/mdsource"
)

func TestOptionalSourcePath(t *testing.T) {
	cmd := &cobra.Command{
		Use: "resolve [source_path]",
	}

	t.Run("returns nil when no args", func(t *testing.T) {
		if err := OptionalSourcePath(cmd, []string{}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		if err := OptionalSourcePath(cmd, []string{"force-app"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := OptionalSourcePath(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts at most 1 arg") {
			t.Errorf("expected error to contain 'accepts at most 1 arg', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
		if code := mdsource.ExitCodeForError(err); code != mdsource.ExitUsageError {
			t.Errorf("expected exit code %d, got %d", mdsource.ExitUsageError, code)
		}
	})
}

func TestParseMembers(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []mdsource.Member
		wantErr bool
	}{
		{
			name:   "single",
			values: []string{"ApexClass:A"},
			want:   []mdsource.Member{{Type: "ApexClass", FullName: "A"}},
		},
		{
			name:   "wildcard and spaces",
			values: []string{" CustomObject : * ", "Layout:Account-Account Layout"},
			want: []mdsource.Member{
				{Type: "CustomObject", FullName: "*"},
				{Type: "Layout", FullName: "Account-Account Layout"},
			},
		},
		{
			name:   "colon in name",
			values: []string{"CustomMetadata:Config.Key:1"},
			want:   []mdsource.Member{{Type: "CustomMetadata", FullName: "Config.Key:1"}},
		},
		{
			name:   "duplicates collapse",
			values: []string{"ApexClass:A", "ApexClass:A"},
			want:   []mdsource.Member{{Type: "ApexClass", FullName: "A"}},
		},
		{name: "no separator", values: []string{"ApexClass"}, wantErr: true},
		{name: "empty type", values: []string{":A"}, wantErr: true},
		{name: "empty name", values: []string{"ApexClass:"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ParseMembers(tt.values)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := set.Members()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("member %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
