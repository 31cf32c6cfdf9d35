// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"tiny max no ellipsis", "hello", 2, "he"},
		{"multibyte runes", "héllo wörld", 8, "héllo..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateRunes(tc.input, tc.maxRunes)
			if got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.want)
			}
		})
	}
}

func TestTruncateWidth_CJK(t *testing.T) {
	// Double-width characters occupy 2 columns each
	got := TruncateWidth("日本語テスト", 7)
	if strings.Count(got, "日") == 0 && got != "" {
		t.Errorf("TruncateWidth should retain leading characters, got %q", got)
	}
	// Result must fit the requested width
	if len([]rune(got)) > 7 {
		t.Errorf("TruncateWidth result too long: %q", got)
	}
}

func TestPadWidth(t *testing.T) {
	got := PadWidth("ab", 5)
	if got != "ab   " {
		t.Errorf("PadWidth(ab, 5) = %q, want %q", got, "ab   ")
	}

	// Wider input gets truncated to width
	got = PadWidth("abcdefgh", 5)
	if len(got) != 5 {
		t.Errorf("PadWidth should truncate to width, got %q", got)
	}
}

func TestWrapWords(t *testing.T) {
	got := WrapWords("the quick brown fox", 9)
	want := "the quick\nbrown fox"
	if got != want {
		t.Errorf("WrapWords() = %q, want %q", got, want)
	}

	// Empty text passes through
	if WrapWords("", 10) != "" {
		t.Error("WrapWords of empty string should be empty")
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.txt")

	if err := AtomicWriteFile(path, []byte("payload"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("file content = %q, want %q", data, "payload")
	}

	// Overwrite replaces atomically
	if err := AtomicWriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "updated" {
		t.Errorf("file content after overwrite = %q, want %q", data, "updated")
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}
