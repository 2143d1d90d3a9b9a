// Package raster is a software canvas: it rasterizes a replayed frame
// into an RGBA image. It exists for the demo command and for golden
// testing; real embedders supply their own canvas.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-ripple/ripple/pkg/graphics"
)

// Palette the canvas cycles through for successive rectangles, so
// adjacent boxes stay distinguishable without any styling input.
var palette = []color.RGBA{
	{R: 0x4e, G: 0x79, B: 0xa7, A: 0xff},
	{R: 0xf2, G: 0x8e, B: 0x2b, A: 0xff},
	{R: 0x59, G: 0xa1, B: 0x4f, A: 0xff},
	{R: 0xe1, G: 0x57, B: 0x59, A: 0xff},
	{R: 0xb0, G: 0x7a, B: 0xa1, A: 0xff},
}

var outline = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

// Canvas rasterizes replayed frame operations into an image. It
// implements the frame.Canvas interface. Not safe for concurrent use;
// replay is single-threaded by contract.
type Canvas struct {
	img   *image.RGBA
	cur   graphics.Transform
	stack []graphics.Transform
	drawn int
}

// New creates a canvas of the given pixel size with a white background.
func New(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return &Canvas{img: img, cur: graphics.Identity()}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(dx, dy float64) {
	c.cur = c.cur.Then(graphics.Translate(dx, dy))
}

func (c *Canvas) Transform(t graphics.Transform) {
	c.cur = c.cur.Then(t)
}

// Rect fills the transformed rectangle, outlines it, and draws the
// label in its top-left corner.
func (c *Canvas) Rect(r graphics.Rect, label string) {
	tl := c.cur.Apply(graphics.Offset{X: r.Left, Y: r.Top})
	br := c.cur.Apply(graphics.Offset{X: r.Right, Y: r.Bottom})
	bounds := image.Rect(
		int(math.Floor(tl.X)), int(math.Floor(tl.Y)),
		int(math.Ceil(br.X)), int(math.Ceil(br.Y)),
	)

	fill := palette[c.drawn%len(palette)]
	c.drawn++
	draw.Draw(c.img, bounds, image.NewUniform(fill), image.Point{}, draw.Src)
	c.strokeRect(bounds)

	if label != "" {
		d := font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(outline),
			Face: basicfont.Face7x13,
			Dot: fixed.Point26_6{
				X: fixed.I(bounds.Min.X + 2),
				Y: fixed.I(bounds.Min.Y + basicfont.Face7x13.Ascent + 1),
			},
		}
		d.DrawString(label)
	}
}

func (c *Canvas) strokeRect(b image.Rectangle) {
	for x := b.Min.X; x < b.Max.X; x++ {
		c.img.SetRGBA(x, b.Min.Y, outline)
		c.img.SetRGBA(x, b.Max.Y-1, outline)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		c.img.SetRGBA(b.Min.X, y, outline)
		c.img.SetRGBA(b.Max.X-1, y, outline)
	}
}
