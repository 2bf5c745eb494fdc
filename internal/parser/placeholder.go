package parser

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// placeholderSize is the edge length of generated placeholder thumbnails.
const placeholderSize = 400

var (
	fontOnce        sync.Once
	placeholderFont *opentype.Font
	fontErr         error
)

func loadFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		placeholderFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return placeholderFont, fontErr
}

// placeholderLabel picks the text rendered on a placeholder: the uppercased
// file extension, or the mime subtype when the filename has none.
func placeholderLabel(mimeType, fileName string) string {
	ext := ""
	if fileName != "" {
		ext = strings.TrimPrefix(filepath.Ext(fileName), ".")
	}
	if ext == "" {
		if i := strings.LastIndex(mimeType, "/"); i >= 0 {
			ext = mimeType[i+1:]
		} else {
			ext = mimeType
		}
	}
	return strings.ToUpper(ext)
}

// pastelColor generates a random, visually pleasing background color.
// Each channel lands in [100, 200] so the result stays muted.
func pastelColor() color.RGBA {
	return color.RGBA{
		R: uint8(100 + rand.Intn(101)),
		G: uint8(100 + rand.Intn(101)),
		B: uint8(100 + rand.Intn(101)),
		A: 255,
	}
}

// textColorFor returns black or white depending on background brightness,
// using a simple threshold on the averaged RGB channels.
func textColorFor(bg color.RGBA) color.Color {
	brightness := (int(bg.R) + int(bg.G) + int(bg.B)) / 3
	if brightness > 150 {
		return color.Black
	}
	return color.White
}

// renderPlaceholder draws the placeholder image: a solid pastel square with
// the label centered in a size that shrinks as the label grows.
func renderPlaceholder(label string) (image.Image, error) {
	bg := pastelColor()
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	fnt, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse placeholder font: %w", err)
	}

	fontSize := placeholderSize / (len(label) + 2)
	if max := placeholderSize / 3; fontSize > max {
		fontSize = max
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	defer func() { _ = face.Close() }()

	bounds, advance := font.BoundString(face, label)
	textWidth := advance.Ceil()
	textHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColorFor(bg)),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I((placeholderSize - textWidth) / 2),
			Y: fixed.I((placeholderSize-textHeight)/2) - bounds.Min.Y,
		},
	}
	drawer.DrawString(label)

	return img, nil
}
