package id

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	encodedLen := base64.RawURLEncoding.EncodedLen(DefaultByteLength)
	tests := []struct {
		name    string
		prefix  string
		wantLen int
	}{
		{
			name:    "valid",
			prefix:  "id",
			wantLen: encodedLen + len("id_"),
		},
		{
			name:    "no-prefix",
			prefix:  "",
			wantLen: encodedLen,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.prefix)
			if err != nil {
				t.Errorf("New() error = %v", err)
				return
			}
			if tt.prefix != "" && !strings.HasPrefix(got, tt.prefix+"_") {
				t.Errorf("New() = %v, wanted it to start with %v", got, tt.prefix)
			}
			if len(got) != tt.wantLen {
				t.Errorf("New() = %v, with len of %d and wanted len of %v", got, len(got), tt.wantLen)
			}
		})
	}
}

func TestNewWithLen(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := NewWithLen("v", 72)
		if err != nil {
			t.Fatalf("NewWithLen() error = %v", err)
		}
		if wantLen := base64.RawURLEncoding.EncodedLen(72) + len("v_"); len(got) != wantLen {
			t.Errorf("NewWithLen() = %v, with len of %d and wanted len of %v", got, len(got), wantLen)
		}
	})
	t.Run("invalid-length", func(t *testing.T) {
		if _, err := NewWithLen("", 0); err == nil {
			t.Error("NewWithLen() wanted an error for a zero length")
		}
	})
}
