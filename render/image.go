package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Format is an encoded snapshot type
type Format uint8

const (
	FormatWebP Format = iota
	FormatTGA
)

// ErrUnknownFormat is returned for unsupported image formats
var ErrUnknownFormat = errors.New("render: unknown image format")

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return FormatWebP, nil
	case ".tga":
		return FormatTGA, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

func (f Format) String() string {
	switch f {
	case FormatWebP:
		return "webp"
	case FormatTGA:
		return "tga"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ImageOptions configures the offscreen presenter
type ImageOptions struct {
	Width       int
	Height      int
	Supersample int
	Tint        string
	PointAlpha  float64
}

// ImagePresenter renders frames offscreen at supersampled resolution and
// keeps a downsampled RGBA result
type ImagePresenter struct {
	opts   ImageOptions
	tint   colorful.Color
	proj   Projector
	canvas *Canvas
	hi     *image.RGBA
	out    *image.RGBA
}

// NewImagePresenter validates options, zero values take defaults
func NewImagePresenter(opts ImageOptions) (*ImagePresenter, error) {
	if opts.Width == 0 {
		opts.Width = parameter.SnapshotWidth
	}
	if opts.Height == 0 {
		opts.Height = parameter.SnapshotHeight
	}
	if opts.Supersample == 0 {
		opts.Supersample = parameter.SnapshotSupersample
	}
	if opts.Tint == "" {
		opts.Tint = parameter.PointTint
	}
	if opts.PointAlpha == 0 {
		opts.PointAlpha = parameter.PointAlphaImage
	}
	if opts.Width < 0 || opts.Height < 0 {
		return nil, fmt.Errorf("render: invalid image size %dx%d", opts.Width, opts.Height)
	}
	if opts.Supersample < 1 || opts.Supersample > parameter.SnapshotSupersampleMax {
		return nil, fmt.Errorf("render: supersample %d outside [1, %d]", opts.Supersample, parameter.SnapshotSupersampleMax)
	}
	tint, err := ParseTint(opts.Tint)
	if err != nil {
		return nil, err
	}

	hw, hh := opts.Width*opts.Supersample, opts.Height*opts.Supersample
	return &ImagePresenter{
		opts:   opts,
		tint:   tint,
		canvas: NewCanvas(hw, hh),
		hi:     image.NewRGBA(image.Rect(0, 0, hw, hh)),
		out:    image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
	}, nil
}

// Present implements engine.Presenter
func (p *ImagePresenter) Present(f *engine.Frame) error {
	hw, hh := p.canvas.Size()
	p.canvas.Clear()
	p.proj.Setup(hw, hh, 1, f.Distance, f.GroupRotation)

	contrib := Premultiply(p.tint, p.opts.PointAlpha)
	// Sprite diameter in world units, attenuated by depth
	radius := float32(parameter.PointSize) * p.proj.Focal() / 2

	n := len(f.Live) / 3
	for i := 0; i < n; i++ {
		sx, sy, depth, ok := p.proj.Project(vmath.V3At(f.Live, i))
		if !ok {
			continue
		}
		p.canvas.Disc(sx, sy, radius/depth, contrib)
	}

	for y := 0; y < hh; y++ {
		for x := 0; x < hw; x++ {
			c := p.canvas.At(x, y).Clamp()
			i := p.hi.PixOffset(x, y)
			p.hi.Pix[i] = c.R
			p.hi.Pix[i+1] = c.G
			p.hi.Pix[i+2] = c.B
			p.hi.Pix[i+3] = 255
		}
	}

	if p.opts.Supersample == 1 {
		copy(p.out.Pix, p.hi.Pix)
		return nil
	}
	draw.CatmullRom.Scale(p.out, p.out.Bounds(), p.hi, p.hi.Bounds(), draw.Src, nil)
	return nil
}

// Image returns the latest downsampled frame, reused across Present calls
func (p *ImagePresenter) Image() *image.RGBA {
	return p.out
}

// Encode writes the latest frame
func (p *ImagePresenter) Encode(w io.Writer, format Format) error {
	var err error
	switch format {
	case FormatWebP:
		err = nativewebp.Encode(w, p.out, nil)
	case FormatTGA:
		err = tga.Encode(w, p.out)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("render: encode %s: %w", format, err)
	}
	return nil
}
