package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name        string
		raw         []byte
		want        any
		wantDecoded bool
	}{
		{
			name:        "JSON Object",
			raw:         []byte(`{"x":1}`),
			want:        map[string]any{"x": 1.0},
			wantDecoded: true,
		},
		{
			name:        "JSON Array",
			raw:         []byte(`[1,2]`),
			want:        []any{1.0, 2.0},
			wantDecoded: true,
		},
		{
			name:        "JSON Null",
			raw:         []byte(`null`),
			want:        nil,
			wantDecoded: true,
		},
		{
			name:        "Bare Number",
			raw:         []byte(`1600000000`),
			want:        1600000000.0,
			wantDecoded: true,
		},
		{
			name:        "Plain Text",
			raw:         []byte("hello there"),
			want:        "hello there",
			wantDecoded: false,
		},
		{
			name:        "Empty Payload",
			raw:         []byte{},
			want:        "",
			wantDecoded: false,
		},
		{
			name:        "Invalid UTF-8 Stays Raw",
			raw:         []byte{0xff, 0xfe, 0x01},
			want:        []byte{0xff, 0xfe, 0x01},
			wantDecoded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, decoded := decodePayload(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDecoded, decoded)
		})
	}
}
