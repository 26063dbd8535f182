package excel

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"omsim/domain/radon"
	"omsim/internal/errors"
	loglib "omsim/internal/log"
	"omsim/ports"
)

// SeriesReader loads a building from an Excel or CSV file. The first row
// holds room ids, every following row one hour of values. A leading column
// headed "ID" is treated as the hour index and skipped.
type SeriesReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   loglib.Logger
}

var _ ports.BuildingSource = (*SeriesReader)(nil)

// ReaderOption configures a SeriesReader
type ReaderOption func(*SeriesReader)

// WithSheet selects the worksheet; the active sheet is used by default
func WithSheet(name string) ReaderOption {
	return func(r *SeriesReader) {
		r.sheet = name
	}
}

// WithLogger sets the logger used for read diagnostics
func WithLogger(l loglib.Logger) ReaderOption {
	return func(r *SeriesReader) {
		r.logger = loglib.NewLogger(l)
	}
}

// NewSeriesReader picks the file type from the extension
func NewSeriesReader(filePath string, opts ...ReaderOption) *SeriesReader {
	r := &SeriesReader{
		filePath: filePath,
		fileType: fileTypeOf(filePath),
		logger:   loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func fileTypeOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return "csv"
	}
	return "xlsx"
}

// ReadBuilding reads every room column into a building named after the file
func (r *SeriesReader) ReadBuilding() (*radon.Building, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(r.fileType + " file " + r.filePath)
	}

	start := time.Now()
	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	b, err := buildingFromRows(name, rows)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", r.filePath)
	}
	r.logger.Debug("series file read", loglib.Fields{
		"file":     r.filePath,
		"rooms":    len(b.Rooms),
		"hours":    b.MinSeriesLen(),
		"duration": time.Since(start).String(),
	})
	return b, nil
}

func (r *SeriesReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to open Excel file")
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(errors.InvalidInput(err.Error()), "failed to read sheet %q", sheet)
	}
	return rows, nil
}

func (r *SeriesReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to open CSV file")
	}
	defer file.Close()
	return readCSV(file)
}

// readCSV accepts comma or semicolon separated input, deciding on the
// header line.
func readCSV(in io.Reader) ([][]string, error) {
	br := bufio.NewReader(in)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to read CSV file")
	}
	firstLine := string(head)
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}

	reader := csv.NewReader(br)
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		reader.Comma = ';'
	}
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to read CSV file")
	}
	return rows, nil
}

// buildingFromRows converts a header row plus hourly rows into rooms. Every
// room must have a value for every hour.
func buildingFromRows(name string, rows [][]string) (*radon.Building, error) {
	if len(rows) < 2 {
		return nil, errors.InvalidInput("file must have a header row and at least one data row")
	}

	header := rows[0]
	first := 0
	if len(header) > 0 && strings.EqualFold(strings.TrimSpace(header[0]), indexHeader) {
		first = 1
	}
	ids := make([]string, 0, len(header)-first)
	for _, h := range header[first:] {
		ids = append(ids, strings.TrimSpace(h))
	}
	if len(ids) == 0 {
		return nil, errors.InvalidInput("header row has no room ids")
	}

	hours := len(rows) - 1
	series := make([][]float64, len(ids))
	for j := range series {
		series[j] = make([]float64, hours)
	}
	for i, row := range rows[1:] {
		for j, id := range ids {
			col := first + j
			cell := ""
			if col < len(row) {
				cell = strings.TrimSpace(row[col])
			}
			if cell == "" {
				return nil, errors.InvalidInput("room " + id + " has no value at hour " + strconv.Itoa(i))
			}
			v, err := strconv.ParseFloat(strings.Replace(cell, ",", ".", 1), 64)
			if err != nil {
				return nil, errors.InvalidInput("room " + id + " has non-numeric value " + strconv.Quote(cell) + " at hour " + strconv.Itoa(i))
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.InvalidInput("room " + id + " has non-finite value " + strconv.Quote(cell) + " at hour " + strconv.Itoa(i))
			}
			series[j][i] = v
		}
	}

	rooms := make([]*radon.Room, len(ids))
	for j, id := range ids {
		rooms[j] = radon.NewRoom(id, series[j])
	}
	return radon.NewBuilding(name, rooms)
}
