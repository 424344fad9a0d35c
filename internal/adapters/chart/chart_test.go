package chart

import (
	"bytes"
	"image/png"
	"testing"
)

func TestBarPNG(t *testing.T) {
	tests := []struct {
		name string
		bars []Bar
	}{
		{"several", []Bar{{"Courses", 12}, {"School", 4}, {"Schemes", 0}}},
		{"all zero", []Bar{{"A", 0}, {"B", 0}}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := BarPNG("Catalog sizes", tt.bars)
			if err != nil {
				t.Fatalf("BarPNG: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
				t.Errorf("bounds = %v", b)
			}
		})
	}
}
