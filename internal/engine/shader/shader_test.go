package shader

import (
	"reflect"
	"testing"
)

func TestCString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"uColor", "uColor\x00"},
		{"uColor\x00", "uColor\x00"},
		{"", "\x00"},
	}
	for _, tt := range tests {
		if got := cString(tt.in); got != tt.want {
			t.Errorf("cString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInfoLog(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want string
	}{
		{"nul terminated", []byte("0:12(3): error: syntax\n\x00\x00"), "0:12(3): error: syntax"},
		{"multi line", []byte("ERROR: a\nERROR: b\n"), "ERROR: a ERROR: b"},
		{"empty", []byte{0}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := infoLog(tt.buf); got != tt.want {
				t.Errorf("infoLog() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMissingSorted(t *testing.T) {
	got := missing(map[string]int32{"uFogUse": -1, "uColor": 0, "uCameraPos": -1})
	want := []string{"uCameraPos", "uFogUse"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("missing() = %v, want %v", got, want)
	}
	if missing(map[string]int32{"uColor": 2}) != nil {
		t.Error("no missing uniforms should return nil")
	}
}
