// Package bigchar renders numerals as large block art using half-block characters.
package bigchar

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	faceSize  = 64
	faceDPI   = 72
	padding   = 4
	threshold = 40
)

// fontPaths are common system locations of a CJK font.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/arphic/uming.ttc",
	// Windows
	"C:\\Windows\\Fonts\\msyh.ttc",
	"C:\\Windows\\Fonts\\simsun.ttc",
}

var errNoFont = errors.New("no usable font")

// collectionTag starts every .ttc/.otc file.
var collectionTag = []byte("ttcf")

// ParseFace builds a face from font data. Collections (.ttc) and CFF
// fonts go through opentype; plain TrueType files go through freetype.
func ParseFace(data []byte) (font.Face, error) {
	if bytes.HasPrefix(data, collectionTag) {
		coll, err := opentype.ParseCollection(data)
		if err != nil || coll.NumFonts() == 0 {
			return nil, errNoFont
		}
		fnt, err := coll.Font(0)
		if err != nil {
			return nil, errNoFont
		}
		return opentype.NewFace(fnt, &opentype.FaceOptions{Size: faceSize, DPI: faceDPI})
	}

	if fnt, err := truetype.Parse(data); err == nil {
		return truetype.NewFace(fnt, &truetype.Options{Size: faceSize, DPI: faceDPI}), nil
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, errNoFont
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{Size: faceSize, DPI: faceDPI})
}

// LoadFace returns a face for the first readable font among paths.
func LoadFace(paths ...string) (font.Face, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if face, err := ParseFace(data); err == nil {
			return face, nil
		}
	}
	return nil, errNoFont
}

type cacheKey struct {
	text       string
	cols, rows int
}

// Renderer draws glyphs from one face and caches the results.
type Renderer struct {
	face font.Face

	mu    sync.Mutex
	cache map[cacheKey]string
}

// New creates a renderer. A nil face yields a renderer that draws nothing.
func New(face font.Face) *Renderer {
	return &Renderer{face: face, cache: make(map[cacheKey]string)}
}

var system = sync.OnceValue(func() *Renderer {
	face, _ := LoadFace(fontPaths...)
	return New(face)
})

// System returns a renderer backed by the first CJK font found on this host.
func System() *Renderer {
	return system()
}

// IsAvailable returns true if the renderer has a font.
func (r *Renderer) IsAvailable() bool {
	return r.face != nil
}

// RenderBlock renders a character using half-block characters (▀▄█).
// cols and rows define the output size in terminal cells.
func (r *Renderer) RenderBlock(char string, cols, rows int) string {
	if char == "" || r.face == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	// Font faces are not safe for concurrent use.
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey{char, cols, rows}
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	rn := []rune(char)[0]
	bounds, _, _ := r.face.GlyphBounds(rn)
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	srcWidth := max(glyphWidth+padding*2, faceSize)
	srcHeight := max(glyphHeight+padding*2, faceSize)

	srcImg := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(srcImg, srcImg.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	x := (srcWidth-glyphWidth)/2 - bounds.Min.X.Floor()
	y := srcHeight - padding - bounds.Max.Y.Ceil()

	d := &font.Drawer{
		Dst:  srcImg,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(string(rn))

	// rows*2 because each cell holds two vertical pixels
	out := imageToHalfBlocks(scaleDown(srcImg, cols, rows*2), cols, rows)
	r.cache[key] = out
	return out
}

// RenderLine renders each character of text and joins the blocks side by
// side. It returns "" when no font is loaded.
func (r *Renderer) RenderLine(text string, cols, rows int) string {
	if r.face == nil || text == "" {
		return ""
	}

	blocks := make([]string, 0, len(text))
	for _, rn := range text {
		blocks = append(blocks, r.RenderBlock(string(rn), cols, rows))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// scaleDown scales a grayscale image using area averaging.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := min(int(float64(dx+1)*xRatio), srcWidth)
			sy2 := min(int(float64(dy+1)*yRatio), srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}

			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

// imageToHalfBlocks converts a grayscale image to half-block art.
func imageToHalfBlocks(img *image.Gray, cols, rows int) string {
	var result strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			topOn := brightness(img, col, row*2) > threshold
			bottomOn := brightness(img, col, row*2+1) > threshold

			switch {
			case topOn && bottomOn:
				result.WriteRune('█')
			case topOn:
				result.WriteRune('▀')
			case bottomOn:
				result.WriteRune('▄')
			default:
				result.WriteRune(' ')
			}
		}
		if row < rows-1 {
			result.WriteRune('\n')
		}
	}

	return result.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}
