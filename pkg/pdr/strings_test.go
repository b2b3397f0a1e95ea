package pdr

import (
	"errors"
	"testing"
)

func TestDecodeLocalizedNameConsumed(t *testing.T) {
	buf := []byte{
		0xFF, // leading byte, not part of the pair
		'e', 'n', 0x0,
		0x0, 'T', 0x0, 'E', 0x0, 'M', 0x0, 'P', 0x0, '1', 0x0, 0x0,
		'f', 'r', 0x0,
		0x0, 'X', 0x0, 0x0,
	}

	n, consumed, err := DecodeLocalizedName(buf, 1)
	if err != nil {
		t.Fatalf("DecodeLocalizedName failed: %v", err)
	}
	if n.Tag != "en" || n.Name != "TEMP1" {
		t.Errorf("got %+v, want {en TEMP1}", n)
	}
	if consumed != 15 {
		t.Errorf("consumed = %d, want 15", consumed)
	}

	n, consumed, err = DecodeLocalizedName(buf, 1+consumed)
	if err != nil {
		t.Fatalf("second DecodeLocalizedName failed: %v", err)
	}
	if n.Tag != "fr" || n.Name != "X" || consumed != 7 {
		t.Errorf("got %+v consumed %d, want {fr X} consumed 7", n, consumed)
	}
}

func TestDecodeLocalizedNameEmptyFields(t *testing.T) {
	n, consumed, err := DecodeLocalizedName([]byte{0x0, 0x0, 0x0}, 0)
	if err != nil {
		t.Fatalf("DecodeLocalizedName failed: %v", err)
	}
	if n.Tag != "" || n.Name != "" || consumed != 3 {
		t.Errorf("got %+v consumed %d", n, consumed)
	}
}

func TestDecodeLocalizedNameNonASCII(t *testing.T) {
	tests := []struct {
		name  string
		units []byte
		want  string
	}{
		{"latin-1", []byte{0x00, 'T', 0x00, 0xE9, 0x00, 0x00}, "Té"},
		{"cjk", []byte{0x6E, 0x29, 0x5E, 0xA6, 0x00, 0x00}, "温度"},
		{"surrogate pair", []byte{0xD8, 0x3D, 0xDE, 0x00, 0x00, 0x00}, "\U0001F600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := append([]byte{'x', 0x0}, tt.units...)
			n, consumed, err := DecodeLocalizedName(buf, 0)
			if err != nil {
				t.Fatalf("DecodeLocalizedName failed: %v", err)
			}
			if n.Name != tt.want {
				t.Errorf("Name = %q, want %q", n.Name, tt.want)
			}
			if consumed != len(buf) {
				t.Errorf("consumed = %d, want %d", consumed, len(buf))
			}
		})
	}
}

func TestDecodeLocalizedNameErrors(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		off     int
		wantErr error
	}{
		{"offset past end", []byte{0x0}, 5, ErrTruncatedPayload},
		{"negative offset", []byte{0x0}, -1, ErrTruncatedPayload},
		{"empty", nil, 0, ErrUnterminatedString},
		{"tag only", []byte{'e', 'n', 0x0}, 0, ErrUnterminatedString},
		{"half unit terminator", []byte{'e', 0x0, 0x0}, 0, ErrUnterminatedString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeLocalizedName(tt.buf, tt.off)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppendLocalizedName(t *testing.T) {
	got, err := AppendLocalizedName(nil, LocalizedName{Tag: "en", Name: "S0"})
	if err != nil {
		t.Fatalf("AppendLocalizedName failed: %v", err)
	}
	want := []byte{'e', 'n', 0x0, 0x0, 'S', 0x0, '0', 0x0, 0x0}
	if string(got) != string(want) {
		t.Errorf("got % x, want % x", got, want)
	}

	if _, err := AppendLocalizedName(nil, LocalizedName{Tag: "e\x00n", Name: "x"}); !errors.Is(err, ErrInvalidString) {
		t.Errorf("NUL in tag: error = %v, want %v", err, ErrInvalidString)
	}
	if _, err := AppendLocalizedName(nil, LocalizedName{Tag: "en", Name: "a\x00b"}); !errors.Is(err, ErrInvalidString) {
		t.Errorf("NUL in name: error = %v, want %v", err, ErrInvalidString)
	}
}
