package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"family-records-go/internal/domain/family"
	"family-records-go/pkg/logger"
	"github.com/go-pdf/fpdf"
)

const dateLayout = "02 Jan 2006"

// Exporter renders family records as PDF and Excel documents. Photos are
// resolved against mediaDir; a missing photo is logged and skipped, never
// fatal.
type Exporter struct {
	mediaDir string
	log      logger.Logger
}

func NewExporter(mediaDir string, log logger.Logger) *Exporter {
	return &Exporter{mediaDir: mediaDir, log: log}
}

// FamilyPDF renders one family as a printable document: head details, the
// member table and the hobby list.
func (e *Exporter) FamilyPDF(detail *family.FamilyDetail) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Family Record", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, fmt.Sprintf("%s %s", detail.Head.Name, detail.Head.Surname), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	if photo := e.photoPath(detail.Head.PhotoPath); photo != "" {
		pdf.ImageOptions(photo, 160, 10, 35, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	pdf.SetFont("Helvetica", "", 11)
	e.detailRow(pdf, "Birth Date", detail.Head.DOB.Format(dateLayout))
	e.detailRow(pdf, "Mobile", detail.Head.MobileNo)
	e.detailRow(pdf, "Address", detail.Head.Address)
	e.detailRow(pdf, "Pincode", detail.Head.Pincode)
	e.detailRow(pdf, "State", detail.Head.State.Name)
	e.detailRow(pdf, "City", detail.Head.City.Name)
	e.detailRow(pdf, "Marital Status", detail.Head.MaritalStatus)
	if detail.Head.WeddingDate != nil {
		e.detailRow(pdf, "Wedding Date", detail.Head.WeddingDate.Format(dateLayout))
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, fmt.Sprintf("Family Members (%d)", len(detail.Members)), "", 1, "L", false, 0, "")
	e.memberBlocks(pdf, detail.Members)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, "Hobbies", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if len(detail.Hobbies) == 0 {
		pdf.CellFormat(0, 7, "None", "", 1, "L", false, 0, "")
	}
	for _, hobby := range detail.Hobbies {
		pdf.CellFormat(0, 7, "- "+hobby.Name, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render family pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) detailRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 7, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 7, value, "", "L", false)
}

func (e *Exporter) memberBlocks(pdf *fpdf.Fpdf, members []family.FamilyMember) {
	if len(members) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, "No members", "", 1, "L", false, 0, "")
		return
	}

	for i, m := range members {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, fmt.Sprintf("%d. %s", i+1, m.Name), "", 1, "L", false, 0, "")

		if photo := e.photoPath(m.PhotoPath); photo != "" {
			pdf.ImageOptions(photo, 165, pdf.GetY(), 25, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		}

		e.detailRow(pdf, "Birth Date", m.DOB.Format(dateLayout))
		e.detailRow(pdf, "Relation", m.Relation)
		if m.Education != "" {
			e.detailRow(pdf, "Education", m.Education)
		}
		e.detailRow(pdf, "Marital Status", m.MaritalStatus)
		if m.WeddingDate != nil {
			e.detailRow(pdf, "Wedding Date", m.WeddingDate.Format(dateLayout))
		}
		pdf.Ln(3)
	}
}

// photoPath resolves a stored photo path against the media directory and
// reports "" when the file is not usable.
func (e *Exporter) photoPath(stored string) string {
	if stored == "" {
		return ""
	}
	path := stored
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.mediaDir, stored)
	}
	if _, err := os.Stat(path); err != nil {
		e.log.Warn("export: photo not readable, skipping", "path", path, "err", err)
		return ""
	}
	return path
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
