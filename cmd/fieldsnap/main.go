package main

import (
	"flag"
	"fmt"
	"log"

	"hexpop/internal/game"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// fieldsnap renders a seeded field to a PNG, useful for eyeballing grid
// layouts and reproducing reported positions without launching the game.
func main() {
	var seed int64
	var rows int
	var gap float64
	var out string

	flag.Int64Var(&seed, "seed", 1, "field RNG seed")
	flag.IntVar(&rows, "rows", 6, "initial populated rows")
	flag.Float64Var(&gap, "gap", 0.2, "gap probability")
	flag.StringVar(&out, "out", "field.png", "output PNG path")
	flag.Parse()

	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithRows(rows, gap),
	)
	snap := ts.Session.Snapshot()
	fieldW := ts.Session.Field().Width()
	fieldH := ts.Session.Field().Height()

	const pad = 24.0
	dc := gg.NewContext(int(fieldW+2*pad), int(fieldH+2*pad))
	dc.SetRGB(0.06, 0.07, 0.1)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    14,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	// Danger line.
	dangerY := pad + snap.AnchorY - 150
	dc.SetRGBA(0.7, 0.25, 0.25, 0.8)
	dc.SetLineWidth(1)
	dc.DrawLine(pad, dangerY, pad+fieldW, dangerY)
	dc.Stroke()

	for _, b := range snap.Bubbles {
		c := b.Color.RGBA()
		dc.SetRGB255(int(c.R), int(c.G), int(c.B))
		dc.DrawCircle(pad+b.X, pad+b.Y, 23)
		dc.Fill()
	}

	// Anchor marker.
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.DrawCircle(pad+snap.AnchorX, pad+snap.AnchorY, 6)
	dc.Fill()

	label := fmt.Sprintf("seed=%d rows=%d gap=%.2f bubbles=%d", seed, rows, gap, len(snap.Bubbles))
	dc.SetRGB(0.9, 0.9, 0.9)
	dc.DrawString(label, pad, 16)

	if err := dc.SavePNG(out); err != nil {
		log.Fatalf("save %s: %v", out, err)
	}
	fmt.Printf("wrote %s (%d bubbles)\n", out, len(snap.Bubbles))
}
