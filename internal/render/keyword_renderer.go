package render

import (
	"image"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/promptcanvas/internal/assets"
)

// KeywordRenderer draws a prompt by running it through the keyword rules.
// It is safe for concurrent use.
type KeywordRenderer struct {
	ttFont *truetype.Font
	Logger Logger
}

// NewKeywordRenderer parses the embedded label font. A parse failure is
// logged and the label falls back to basicfont.
func NewKeywordRenderer(logger Logger) *KeywordRenderer {
	if logger == nil {
		logger = noopLogger{}
	}
	r := &KeywordRenderer{Logger: logger}
	if tt, err := truetype.Parse(assets.FontTTF); err != nil {
		logger.Errorf("render", "truetype parse failed, using basicfont: %v", err)
	} else {
		r.ttFont = tt
	}
	return r
}

// Render allocates a CanvasWidth×CanvasHeight surface and draws prompt on it.
func (r *KeywordRenderer) Render(prompt string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	canvas := NewCanvas(img, r.ttFont)
	canvas.Logger = r.logger()
	r.RenderTo(canvas, prompt)
	return img
}

// RenderTo draws prompt onto d in place.
func (r *KeywordRenderer) RenderTo(d Drawer, prompt string) {
	match := MatchPrompt(prompt)
	background, overlays := match.Names()
	r.logger().Infof("render", "prompt matched background=%s overlays=%v", background, overlays)

	d.Fill(Blank)
	match.Background.Draw(d)
	for _, rule := range match.Overlays {
		rule.Draw(d)
	}
	d.DrawText(LabelPrefix+prompt, LabelOrigin.X, LabelOrigin.Y, TextStyle{Color: Label, Size: LabelSize})
}

func (r *KeywordRenderer) logger() Logger {
	if r.Logger == nil {
		return noopLogger{}
	}
	return r.Logger
}
