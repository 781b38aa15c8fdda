package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// Canvas implements Drawer on top of an RGBA buffer. Shapes are
// anti-aliased and composited with draw.Over.
type Canvas struct {
	img    *image.RGBA
	ttFont *truetype.Font
	Logger Logger
}

// NewCanvas wraps img. When ttFont is nil text falls back to basicfont.
func NewCanvas(img *image.RGBA, ttFont *truetype.Font) *Canvas {
	return &Canvas{img: img, ttFont: ttFont, Logger: noopLogger{}}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	bounds := c.img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *Canvas) FillLinearGradient(from, to Point, start, end color.Color) {
	gradient := newLinearGradient(from, to, start, end, c.img.Bounds())
	draw.Draw(c.img, c.img.Bounds(), gradient, c.img.Bounds().Min, draw.Src)
}

func (c *Canvas) FillRect(rect image.Rectangle, col color.Color) {
	draw.Draw(c.img, rect.Intersect(c.img.Bounds()), &image.Uniform{C: col}, image.Point{}, draw.Over)
}

func (c *Canvas) FillPolygon(points []Point, col color.Color) {
	if len(points) < 3 {
		return
	}
	z := c.rasterizer()
	z.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *Canvas) FillCircle(center Point, radius float64, col color.Color) {
	if radius <= 0 {
		return
	}
	cx, cy, r := float32(center.X), float32(center.Y), float32(radius)
	k := float32(kappa) * r

	z := c.rasterizer()
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *Canvas) DrawText(text string, x, y int, style TextStyle) {
	size := style.Size
	if size <= 0 {
		size = LabelSize
	}
	src := image.NewUniform(style.Color)

	if c.ttFont != nil {
		ctx := freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(c.ttFont)
		ctx.SetFontSize(float64(size))
		ctx.SetHinting(font.HintingNone)
		ctx.SetClip(c.img.Bounds())
		ctx.SetDst(c.img)
		ctx.SetSrc(src)
		_, err := ctx.DrawString(text, freetype.Pt(x, y))
		if err == nil {
			return
		}
		c.Logger.Errorf("canvas", "truetype draw failed, using basicfont: %v", err)
	}

	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  src,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

func (c *Canvas) rasterizer() *vector.Rasterizer {
	width, height := c.Size()
	return vector.NewRasterizer(width, height)
}
