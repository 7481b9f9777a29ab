package wordlist

import (
	"io"
	"strings"
	"testing"
)

func TestReaderNext(t *testing.T) {
	r := NewReader(strings.NewReader("apple\t1\nbanana\t2\n\ncherry\t3\n"))

	want := []struct {
		key   string
		value int32
	}{
		{"apple", 1},
		{"banana", 2},
		{"cherry", 3},
	}

	for _, w := range want {
		key, value, err := r.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if string(key) != w.key || value != w.value {
			t.Fatalf("got (%q, %d), want (%q, %d)", key, value, w.key, w.value)
		}
	}

	if _, _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReaderRejectsMissingTab(t *testing.T) {
	r := NewReader(strings.NewReader("noseparator\n"))
	if _, _, err := r.Next(); err == nil {
		t.Fatalf("expected an error for a line with no tab separator")
	}
}

func TestReadAll(t *testing.T) {
	keys, values, err := ReadAll(strings.NewReader("a\t1\nb\t2\n"))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(keys) != 2 || string(keys[0]) != "a" || values[0] != 1 {
		t.Fatalf("got keys=%v values=%v", keys, values)
	}
}
