package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/scanwalk/dirscan/internal/types"
)

func TestLoadRules(t *testing.T) {
	t.Run("empty path yields empty rules", func(t *testing.T) {
		rules, err := loadRules("")
		if err != nil {
			t.Fatalf("loadRules() error = %v", err)
		}
		if !reflect.DeepEqual(rules, types.RuleSet{}) {
			t.Errorf("rules = %+v, want zero value", rules)
		}
	})

	t.Run("parses a rules file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := "extensions: [.c, .h]\nignorePatterns: ['*.tmp']\nskipDirs: ['**/examples']\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write rules file: %v", err)
		}

		rules, err := loadRules(path)
		if err != nil {
			t.Fatalf("loadRules() error = %v", err)
		}
		want := types.RuleSet{
			Extensions:     []string{".c", ".h"},
			IgnorePatterns: []string{"*.tmp"},
			SkipDirs:       []string{"**/examples"},
		}
		if !reflect.DeepEqual(rules, want) {
			t.Errorf("rules = %+v, want %+v", rules, want)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		if _, err := loadRules(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("loadRules() error = nil, want error")
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, []byte("extensions: [unclosed"), 0o644); err != nil {
			t.Fatalf("Failed to write rules file: %v", err)
		}
		if _, err := loadRules(path); err == nil {
			t.Error("loadRules() error = nil, want error")
		}
	})
}

func TestFilterConstruction(t *testing.T) {
	if fileFilter(types.RuleSet{}) != nil {
		t.Error("fileFilter(empty) != nil, want nil so the walker skips filtering")
	}
	if dirFilter(types.RuleSet{}) != nil {
		t.Error("dirFilter(empty) != nil, want nil")
	}

	f := fileFilter(types.RuleSet{Extensions: []string{".c"}})
	if f == nil {
		t.Fatal("fileFilter = nil, want filter")
	}
	if !f.Accepts("/x/a.c") || f.Accepts("/x/a.txt") {
		t.Error("file filter does not apply the extension allowlist")
	}

	d := dirFilter(types.RuleSet{SkipDirs: []string{"examples"}})
	if d == nil {
		t.Fatal("dirFilter = nil, want filter")
	}
	if d.Accepts("/x/examples") || !d.Accepts("/x/src") {
		t.Error("dir filter does not apply the skip patterns")
	}
}

func TestResolveUnderRoot(t *testing.T) {
	serveRoot = t.TempDir()

	t.Run("empty path resolves to the root", func(t *testing.T) {
		got, err := resolveUnderRoot("")
		if err != nil {
			t.Fatalf("resolveUnderRoot() error = %v", err)
		}
		if got != serveRoot {
			t.Errorf("resolveUnderRoot(\"\") = %s, want %s", got, serveRoot)
		}
	})

	t.Run("relative path joins under the root", func(t *testing.T) {
		got, err := resolveUnderRoot("sub/dir")
		if err != nil {
			t.Fatalf("resolveUnderRoot() error = %v", err)
		}
		if want := filepath.Join(serveRoot, "sub", "dir"); got != want {
			t.Errorf("resolveUnderRoot() = %s, want %s", got, want)
		}
	})

	t.Run("traversal outside the root is rejected", func(t *testing.T) {
		if _, err := resolveUnderRoot("../outside"); err == nil {
			t.Error("resolveUnderRoot() error = nil, want traversal error")
		} else if !strings.Contains(err.Error(), "traversal") {
			t.Errorf("error = %v, want traversal rejection", err)
		}
	})
}
