package dat

import (
	"bytes"
	"errors"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSaveIOFailure(t *testing.T) {
	d := build(t, []string{"a"}, []int32{1})
	if rc := d.Save(failingWriter{}); rc != -1 {
		t.Fatalf("expected -1 on write failure, got %d", rc)
	}
}

func TestLoadRejectsNonMultipleOfFour(t *testing.T) {
	_, rc := Load(bytes.NewReader([]byte{1, 2, 3}), 0)
	if rc != -1 {
		t.Fatalf("expected -1 for a size not a multiple of 4, got %d", rc)
	}
}

func TestLoadRejectsEmpty(t *testing.T) {
	_, rc := Load(bytes.NewReader(nil), 0)
	if rc != -1 {
		t.Fatalf("expected -1 for an empty unit array, got %d", rc)
	}
}

func TestLoadWithFixedSize(t *testing.T) {
	d := build(t, []string{"a", "b"}, []int32{1, 2})
	var buf bytes.Buffer
	d.Save(&buf)

	loaded, rc := Load(bytes.NewReader(buf.Bytes()), buf.Len())
	if rc != 0 {
		t.Fatalf("Load with explicit size failed: rc=%d", rc)
	}
	if loaded.NumUnits() != d.NumUnits() {
		t.Fatalf("got %d units, want %d", loaded.NumUnits(), d.NumUnits())
	}
}
