package streams

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrTooFewColumns is returned when a data row has fewer columns than the
// book record needs.
var ErrTooFewColumns = errors.New("row has too few columns")

// bookRecord is one converted output line. The source amount column is
// intentionally dropped.
type bookRecord struct {
	Book   string  `json:"book"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
}

// Convert reads CSV data with a header row and columns book, author, amount
// and price, and writes one JSON object per data row. The delimiter is
// detected from the header row; empty rows are skipped and the amount column
// is not carried over.
func Convert(r io.Reader, w io.Writer) error {
	buffered := bufio.NewReader(r)

	header, err := buffered.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "failed to read csv header")
	}

	if strings.TrimSpace(header) == "" {
		return nil // empty input converts to empty output
	}

	reader := csv.NewReader(buffered)
	reader.Comma = detectDelimiter(header)
	reader.FieldsPerRecord = -1

	encoder := json.NewEncoder(w)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return errors.Wrap(err, "failed to read csv row")
		}

		if isEmptyRow(row) {
			continue
		}

		if len(row) < 4 {
			return errors.Wrapf(ErrTooFewColumns, "row %v", row)
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return errors.Wrapf(err, "failed to parse price in row %v", row)
		}

		record := bookRecord{
			Book:   strings.TrimSpace(row[0]),
			Author: strings.TrimSpace(row[1]),
			Price:  price,
		}

		if err := encoder.Encode(record); err != nil {
			return errors.Wrap(err, "failed to write json line")
		}
	}
}

// ConvertFile converts the CSV file at in into a JSON-lines file at out.
func ConvertFile(in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return errors.Wrap(err, "failed to open input file")
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}

	if err := Convert(src, dst); err != nil {
		dst.Close()

		return err
	}

	return errors.Wrap(dst.Close(), "failed to close output file")
}

// detectDelimiter picks the delimiter used in the header row. Semicolon wins
// when both appear, matching the source files this tool is used on.
func detectDelimiter(header string) rune {
	if strings.Contains(header, ";") {
		return ';'
	}

	return ','
}

func isEmptyRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}

	return true
}
