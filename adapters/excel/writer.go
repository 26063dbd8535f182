package excel

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"omsim/domain/radon"
	"omsim/internal/errors"
)

// Writer stores a building in the layout SeriesReader reads: an hour index
// column followed by one column per room.
type Writer struct {
	sheet string
}

// NewWriter writes to sheet, or DefaultSheet when empty
func NewWriter(sheet string) *Writer {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Writer{sheet: sheet}
}

// WriteFile picks xlsx or csv from the extension. All rooms must cover the
// same number of hours.
func (w *Writer) WriteFile(path string, b *radon.Building) error {
	hours, err := gridHours(b)
	if err != nil {
		return err
	}
	if fileTypeOf(path) == "csv" {
		file, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "failed to create CSV file")
		}
		if err := writeCSV(file, b, hours); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}
	return w.writeXLSX(path, b, hours)
}

func (w *Writer) writeXLSX(path string, b *radon.Building, hours int) error {
	f := excelize.NewFile()
	defer f.Close()

	if idx, err := f.GetSheetIndex(w.sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(w.sheet)
		if err != nil {
			return errors.Wrapf(err, "failed to create sheet %q", w.sheet)
		}
		f.SetActiveSheet(idx)
	}

	header := make([]interface{}, 0, len(b.Rooms)+1)
	header = append(header, indexHeader)
	for _, r := range b.Rooms {
		header = append(header, r.ID)
	}
	if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}

	row := make([]interface{}, len(b.Rooms)+1)
	for h := 0; h < hours; h++ {
		row[0] = h
		for j, r := range b.Rooms {
			row[j+1] = r.Series[h]
		}
		cell, err := excelize.CoordinatesToCellName(1, h+2)
		if err != nil {
			return errors.Wrap(err, "failed to address row")
		}
		if err := f.SetSheetRow(w.sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write hour %d", h)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}

func writeCSV(out io.Writer, b *radon.Building, hours int) error {
	w := csv.NewWriter(out)
	header := []string{indexHeader}
	for _, r := range b.Rooms {
		header = append(header, r.ID)
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}
	record := make([]string, len(b.Rooms)+1)
	for h := 0; h < hours; h++ {
		record[0] = strconv.Itoa(h)
		for j, r := range b.Rooms {
			record[j+1] = strconv.FormatFloat(r.Series[h], 'f', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write hour %d", h)
		}
	}
	w.Flush()
	return w.Error()
}

// ExportRoom writes one room as semicolon separated hour;value lines with
// values truncated to whole Bq/m³. SeriesReader reads the result back as a
// one-room building.
func ExportRoom(out io.Writer, room *radon.Room) error {
	w := csv.NewWriter(out)
	w.Comma = ';'
	if err := w.Write([]string{indexHeader, room.ID}); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}
	for h, v := range room.Series {
		if err := w.Write([]string{strconv.Itoa(h), strconv.Itoa(int(v))}); err != nil {
			return errors.Wrapf(err, "failed to write hour %d", h)
		}
	}
	w.Flush()
	return w.Error()
}

func gridHours(b *radon.Building) (int, error) {
	if b == nil || len(b.Rooms) == 0 {
		return 0, errors.InvalidInput("building has no rooms")
	}
	hours := b.Rooms[0].Len()
	for _, r := range b.Rooms {
		if r.Len() != hours {
			return 0, errors.InvalidInput("room " + r.ID + " has " + strconv.Itoa(r.Len()) + " hours, expected " + strconv.Itoa(hours))
		}
	}
	if hours == 0 {
		return 0, errors.InvalidInput("building has no recorded hours")
	}
	return hours, nil
}
