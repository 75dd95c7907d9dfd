// Package raster renders credential card templates to PNG buffers.
//
// Templates are registered per event id when a profile is collected.
// Rendering an event without a registered template fails with
// ErrTemplateNotFound instead of silently skipping the request.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"image/png"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/evento-hq/evento/internal/domain/model"
)

// Base card geometry in pixels before scaling, 16:10-ish ID card shape.
const (
	baseWidth  = 428
	baseHeight = 270

	defaultScale = 2
)

// Template holds everything laid out on a credential card.
type Template struct {
	EventTitle     string
	EventDate      string
	RegistrationID string
	Profile        model.Profile
	Code           string // machine-readable code placeholder
}

// Rasterizer keeps the template registry and produces PNG buffers.
type Rasterizer struct {
	mu        sync.RWMutex
	templates map[int]Template
	scale     int
}

// Option applies a configuration option to the Rasterizer.
type Option func(*Rasterizer)

// WithScale sets the pixel scale applied to the base card geometry.
func WithScale(scale int) Option {
	return func(r *Rasterizer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// New creates a rasterizer with configuration options.
func New(opts ...Option) *Rasterizer {
	r := &Rasterizer{
		templates: make(map[int]Template),
		scale:     defaultScale,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RegisterTemplate makes the card for an event renderable.
func (r *Rasterizer) RegisterTemplate(ctx context.Context, eventID int, t Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[eventID] = t
}

// HasTemplate reports whether a template is registered for the event.
func (r *Rasterizer) HasTemplate(ctx context.Context, eventID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[eventID]
	return ok
}

// Render draws the registered template and returns the encoded PNG.
func (r *Rasterizer) Render(ctx context.Context, eventID int) ([]byte, error) {
	r.mu.RLock()
	t, ok := r.templates[eventID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("event %d: %w", eventID, ErrTemplateNotFound)
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("render cancelled: %w", ctx.Err())
	default:
	}

	img := r.draw(t)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Image()); err != nil {
		return nil, fmt.Errorf("encode card png: %w", err)
	}
	return buf.Bytes(), nil
}

// draw paints the card: gradient background, event header, profile block,
// registration id, photo frame and the code placeholder.
func (r *Rasterizer) draw(t Template) *gg.Context {
	w := baseWidth * r.scale
	h := baseHeight * r.scale
	s := float64(r.scale)

	dc := gg.NewContext(w, h)

	grad := gg.NewLinearGradient(0, 0, float64(w), float64(h))
	grad.AddColorStop(0, color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff})
	grad.AddColorStop(1, color.RGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)

	// Left column: brand, event, profile, registration id.
	dc.DrawString("EVENTO", 20*s, 30*s)
	dc.DrawString(t.EventTitle, 20*s, 55*s)
	dc.DrawString(t.EventDate, 20*s, 72*s)

	dc.DrawString(t.Profile.Name, 20*s, 105*s)
	dc.DrawString(string(t.Profile.Role), 20*s, 122*s)
	dc.DrawString(t.Profile.Email, 20*s, 139*s)
	dc.DrawString(t.Profile.Phone, 20*s, 156*s)

	dc.DrawString("Registration ID", 20*s, 225*s)
	dc.DrawString(t.RegistrationID, 20*s, 242*s)

	// Right column: photo frame above the code box.
	if t.Profile.Photo != "" {
		dc.SetLineWidth(2 * s)
		dc.DrawRoundedRectangle(290*s, 25*s, 90*s, 110*s, 6*s)
		dc.Stroke()
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(290*s, 150*s, 90*s, 90*s)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(298*s, 158*s, 74*s, 74*s)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(t.Code, 335*s, 195*s, 0.5, 0.5)

	return dc
}
