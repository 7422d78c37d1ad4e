// Package spreadsheet converts uploaded workbooks into contact records.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/wichananm65/dynamic-form-backend/internal/record"
)

var ErrParse = errors.New("error parsing spreadsheet")

// Columns is the fixed positional mapping from sheet columns to record fields.
const Columns = 5

// Parse reads the first sheet of an xlsx workbook. Row 0 is the header and is
// always skipped; every other present row becomes one record, columns 0-4
// mapping to first name, last name, phone number, email and additional fields.
func Parse(r io.Reader) ([]record.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	recs, err := newSheetReader(f).records()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return recs, nil
}

type sheetReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	dateFmt  map[int]bool
}

func newSheetReader(f *excelize.File) *sheetReader {
	return &sheetReader{f: f, dateFmt: make(map[int]bool)}
}

func (s *sheetReader) records() ([]record.Record, error) {
	sheets := s.f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	s.sheet = sheets[0]

	props, err := s.f.GetWorkbookProps()
	if err != nil {
		return nil, err
	}
	if props.Date1904 != nil {
		s.date1904 = *props.Date1904
	}

	rows, err := s.f.GetRows(s.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	out := make([]record.Record, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) == 0 {
			continue
		}
		var vals [Columns]string
		for col := 0; col < Columns; col++ {
			c, err := s.cellAt(col, i)
			if err != nil {
				return nil, err
			}
			vals[col] = c.value(s.date1904)
		}
		out = append(out, record.Record{
			FirstName:        vals[0],
			LastName:         vals[1],
			PhoneNumber:      vals[2],
			Email:            vals[3],
			AdditionalFields: vals[4],
		})
	}
	return out, nil
}

// cellAt reads the cell at zero-based column and row.
func (s *sheetReader) cellAt(col, row int) (cell, error) {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return cell{}, err
	}

	var c cell
	if c.formula, err = s.f.GetCellFormula(s.sheet, axis); err != nil {
		return cell{}, err
	}
	if c.typ, err = s.f.GetCellType(s.sheet, axis); err != nil {
		return cell{}, err
	}
	if c.raw, err = s.f.GetCellValue(s.sheet, axis, excelize.Options{RawCellValue: true}); err != nil {
		return cell{}, err
	}
	if c.kind() == KindNumeric {
		if c.isDate, err = s.isDateStyled(axis); err != nil {
			return cell{}, err
		}
	}
	return c, nil
}

func (s *sheetReader) isDateStyled(axis string) (bool, error) {
	styleID, err := s.f.GetCellStyle(s.sheet, axis)
	if err != nil {
		return false, err
	}
	if isDate, ok := s.dateFmt[styleID]; ok {
		return isDate, nil
	}
	style, err := s.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	isDate := isDateFormat(style.NumFmt, style.CustomNumFmt)
	s.dateFmt[styleID] = isDate
	return isDate, nil
}
