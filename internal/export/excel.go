package export

import (
	"fmt"

	"family-records-go/internal/domain/family"
	"family-records-go/internal/domain/location"
	"github.com/xuri/excelize/v2"
)

const headerFillColor = "246BA1"

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
	})
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// FamilyExcel renders one family as a workbook with a head sheet, a member
// sheet and a hobby sheet. Photos are embedded when readable.
func (e *Exporter) FamilyExcel(detail *family.FamilyDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headSheet := "Family Head"
	f.SetSheetName("Sheet1", headSheet)

	weddingDate := ""
	if detail.Head.WeddingDate != nil {
		weddingDate = formatDate(*detail.Head.WeddingDate)
	}
	if err := writeHeader(f, headSheet, []string{
		"Name", "Surname", "Birth Date", "Mobile", "Address", "Pincode",
		"State", "City", "Marital Status", "Wedding Date",
	}); err != nil {
		return nil, err
	}
	if err := setRow(f, headSheet, 2, []any{
		detail.Head.Name, detail.Head.Surname, formatDate(detail.Head.DOB),
		detail.Head.MobileNo, detail.Head.Address, detail.Head.Pincode,
		detail.Head.State.Name, detail.Head.City.Name,
		detail.Head.MaritalStatus, weddingDate,
	}); err != nil {
		return nil, err
	}
	e.embedPhoto(f, headSheet, "L2", detail.Head.PhotoPath)

	memberSheet := "Members"
	if _, err := f.NewSheet(memberSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, memberSheet, []string{
		"Name", "Birth Date", "Relation", "Education", "Marital Status", "Wedding Date",
	}); err != nil {
		return nil, err
	}
	for i, m := range detail.Members {
		wedding := ""
		if m.WeddingDate != nil {
			wedding = formatDate(*m.WeddingDate)
		}
		if err := setRow(f, memberSheet, i+2, []any{
			m.Name, formatDate(m.DOB), m.Relation, m.Education, m.MaritalStatus, wedding,
		}); err != nil {
			return nil, err
		}
		cell, err := excelize.CoordinatesToCellName(7, i+2)
		if err != nil {
			return nil, err
		}
		e.embedPhoto(f, memberSheet, cell, m.PhotoPath)
	}

	hobbySheet := "Hobbies"
	if _, err := f.NewSheet(hobbySheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, hobbySheet, []string{"Hobby"}); err != nil {
		return nil, err
	}
	for i, hobby := range detail.Hobbies {
		if err := setRow(f, hobbySheet, i+2, []any{hobby.Name}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render family excel: %w", err)
	}
	return buf.Bytes(), nil
}

// HeadsExcel renders the full head listing, one row per family.
func (e *Exporter) HeadsExcel(details []family.FamilyDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Family Heads"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeader(f, sheet, []string{
		"Name", "Surname", "Birth Date", "Mobile", "State", "City", "Members", "Hobbies",
	}); err != nil {
		return nil, err
	}
	for i, d := range details {
		hobbies := ""
		for j, hobby := range d.Hobbies {
			if j > 0 {
				hobbies += ", "
			}
			hobbies += hobby.Name
		}
		if err := setRow(f, sheet, i+2, []any{
			d.Head.Name, d.Head.Surname, formatDate(d.Head.DOB), d.Head.MobileNo,
			d.Head.State.Name, d.Head.City.Name, len(d.Members), hobbies,
		}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render heads excel: %w", err)
	}
	return buf.Bytes(), nil
}

// StatesExcel renders the state listing.
func (e *Exporter) StatesExcel(states []location.State) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "States"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeader(f, sheet, []string{"Name", "Status", "Created"}); err != nil {
		return nil, err
	}
	for i, s := range states {
		if err := setRow(f, sheet, i+2, []any{s.Name, s.Status.String(), formatDate(s.CreatedAt)}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render states excel: %w", err)
	}
	return buf.Bytes(), nil
}

// CitiesExcel renders the city listing with each city's state.
func (e *Exporter) CitiesExcel(cities []location.City) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cities"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeader(f, sheet, []string{"Name", "State", "Status", "Created"}); err != nil {
		return nil, err
	}
	for i, c := range cities {
		if err := setRow(f, sheet, i+2, []any{c.Name, c.State.Name, c.Status.String(), formatDate(c.CreatedAt)}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render cities excel: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) embedPhoto(f *excelize.File, sheet, cell, stored string) {
	path := e.photoPath(stored)
	if path == "" {
		return
	}
	if err := f.AddPicture(sheet, cell, path, &excelize.GraphicOptions{ScaleX: 0.5, ScaleY: 0.5}); err != nil {
		e.log.Warn("export: embed photo failed", "path", path, "err", err)
	}
}
