// Package chart draws small PNG bar charts for the analytics page.
package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
)

// Bar is one labelled value.
type Bar struct {
	Label string
	Value int
}

// Size of the rendered image in pixels.
const (
	Width  = 720
	Height = 360
)

var palette = []color.RGBA{
	{0x25, 0x63, 0xeb, 0xff},
	{0x16, 0xa3, 0x4a, 0xff},
	{0xd9, 0x77, 0x06, 0xff},
	{0xdc, 0x26, 0x26, 0xff},
	{0x7c, 0x3a, 0xed, 0xff},
	{0x08, 0x91, 0xb2, 0xff},
}

// BarPNG renders bars left to right with the title across the top.
// Bars are scaled to the largest value; an all-zero input draws empty slots.
func BarPNG(title string, bars []Bar) ([]byte, error) {
	const (
		margin = 40.0
		top    = 50.0
		bottom = 60.0
	)
	dc := gg.NewContext(Width, Height)
	dc.SetColor(color.White)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()

	dc.SetColor(color.Black)
	tw, _ := dc.MeasureString(title)
	dc.DrawString(title, (Width-tw)/2, 25)

	maxVal := 0
	for _, b := range bars {
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}

	plotH := Height - top - bottom
	baseline := Height - bottom
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.DrawLine(margin, baseline, Width-margin, baseline)
	dc.Stroke()

	if len(bars) == 0 {
		return encode(dc)
	}
	slot := (Width - 2*margin) / float64(len(bars))
	barW := slot * 0.6
	for i, b := range bars {
		x := margin + float64(i)*slot + (slot-barW)/2
		h := 0.0
		if maxVal > 0 {
			h = plotH * float64(b.Value) / float64(maxVal)
		}
		dc.SetColor(palette[i%len(palette)])
		dc.DrawRectangle(x, baseline-h, barW, h)
		dc.Fill()

		dc.SetColor(color.Black)
		val := fmt.Sprintf("%d", b.Value)
		vw, _ := dc.MeasureString(val)
		dc.DrawString(val, x+(barW-vw)/2, baseline-h-6)
		lw, _ := dc.MeasureString(b.Label)
		dc.DrawString(b.Label, x+(barW-lw)/2, baseline+20)
	}
	return encode(dc)
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
