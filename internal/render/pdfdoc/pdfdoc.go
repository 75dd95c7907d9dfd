// Package pdfdoc is the document writer collaborator. It turns structured
// build scripts (text blocks, rectangles, raster pages) into PDF files on
// disk.
package pdfdoc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jung-kurt/gofpdf"

	"github.com/evento-hq/evento/internal/domain/model"
)

// Credential cards use the ISO/IEC 7810 ID-1 footprint in landscape.
const (
	cardWidthMM  = 85.6
	cardHeightMM = 53.98

	pageWidthMM = 210 // A4 portrait
)

var whitespace = regexp.MustCompile(`\s+`)

// Filename derives an artifact file name from an event title: whitespace
// runs become underscores, then the suffix and extension are appended.
func Filename(title, suffix string) string {
	return whitespace.ReplaceAllString(title, "_") + suffix + ".pdf"
}

// Writer persists rendered documents under a single output directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteConfirmation produces the registration receipt document and returns
// the written file path.
func (w *Writer) WriteConfirmation(ctx context.Context, reg model.Registration) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(99, 102, 241)
	pdf.Rect(0, 0, pageWidthMM, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	w.centeredText(pdf, "EVENTO", 20)
	pdf.SetFont("Helvetica", "", 14)
	w.centeredText(pdf, "Event Registration Confirmation", 30)

	// Registration metadata
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(20, 55, "Registration Details")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(20, 70, "Registration ID: "+reg.RegistrationID)
	pdf.Text(20, 80, "Date: "+reg.RegisteredAt.Format("1/2/2006, 3:04:05 PM"))

	// Event metadata
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(20, 100, "Event Information")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(20, 115, "Event: "+reg.Title)
	pdf.Text(20, 125, "Date: "+reg.Date)
	pdf.Text(20, 135, "Location: "+reg.Location)
	pdf.Text(20, 145, "Category: "+reg.Category)

	// Wrapped description block
	pdf.SetFont("Helvetica", "", 10)
	y := 160.0
	for _, line := range pdf.SplitText(reg.Description, 170) {
		pdf.Text(20, y, line)
		y += 5
	}

	// Footer band
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(0, 260, pageWidthMM, 37, "F")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	w.centeredText(pdf, "Thank you for registering with Evento!", 275)
	w.centeredText(pdf, "Please present this confirmation at the event venue.", 283)

	path := filepath.Join(w.dir, Filename(reg.Title, "_Confirmation"))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write confirmation pdf: %w", err)
	}
	return path, nil
}

// WriteCard wraps an already-rendered card raster in a fixed-size landscape
// document and returns the written file path.
func (w *Writer) WriteCard(ctx context.Context, title string, cardPNG []byte) (string, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: cardHeightMM, Ht: cardWidthMM},
	})
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("card", opts, bytes.NewReader(cardPNG))
	pdf.ImageOptions("card", 0, 0, cardWidthMM, cardHeightMM, false, opts, 0, "")

	path := filepath.Join(w.dir, Filename(title, "_IC_Card"))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write card pdf: %w", err)
	}
	return path, nil
}

// centeredText draws horizontally centered text at the given baseline.
func (w *Writer) centeredText(pdf *gofpdf.Fpdf, s string, y float64) {
	x := (pageWidthMM - pdf.GetStringWidth(s)) / 2
	pdf.Text(x, y, s)
}
