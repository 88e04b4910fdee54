// Package catalogcsv reads and writes the catalog as semicolon-delimited text.
//
// The file starts with the header line
//
//	Tipo;Titulo;Anio;FechaAdquisicion;InfoExtra
//
// followed by one line per item. InfoExtra holds the ISBN-10 of a book, or
// the availability window "start|end" of an audiobook. Fields containing the
// delimiter, a double quote or a line break are quoted RFC 4180 style; all
// other fields are written bare. The reader turns a quoted \r\n into \n;
// titles never carry line breaks since validators.NormalizeTitle folds them
// into spaces.
package catalogcsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mrlokans/libcatalog/internal/entities"
)

const (
	Delimiter = ';'

	// Tags written in the Tipo column.
	TipoBook      = "Libro"
	TipoAudiobook = "Audiolibro"

	windowSeparator = "|"
	minFields       = 5
)

// Header is the fixed first line of every catalog file.
var Header = []string{"Tipo", "Titulo", "Anio", "FechaAdquisicion", "InfoExtra"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LineError reports a line that had the expected shape but could not be
// turned into a catalog item.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Report is the outcome of decoding a catalog file.
type Report struct {
	Items []entities.Item
	// Skipped counts lines ignored without error: too few fields or an unknown Tipo.
	Skipped int
	Errors  []*LineError
}

// Encode writes the header and one line per item, in order.
func Encode(w io.Writer, items []entities.Item) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range items {
		record, err := encodeItem(item)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write item %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func encodeItem(item entities.Item) ([]string, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	c := item.Common()

	var tipo, extra string
	switch it := item.(type) {
	case *entities.Book:
		tipo = TipoBook
		extra = it.ISBN10
	case *entities.Audiobook:
		tipo = TipoAudiobook
		extra = entities.FormatDate(it.AvailabilityStart) + windowSeparator + entities.FormatDate(it.AvailabilityEnd)
	default:
		return nil, fmt.Errorf("unsupported item type %T", item)
	}

	return []string{tipo, c.Title, strconv.Itoa(c.Year), entities.FormatDate(c.AcquisitionDate), extra}, nil
}

// Decode parses a catalog file. The first line is always treated as the
// header. Lines with fewer than five fields or an unknown Tipo are skipped
// silently; lines that fail to parse or validate are collected in
// Report.Errors. Only read failures are returned as an error.
func Decode(r io.Reader) (*Report, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	report := &Report{Items: []entities.Item{}}

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return report, nil
		}
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				report.Errors = append(report.Errors, &LineError{Line: parseErr.StartLine, Err: parseErr.Err})
				continue
			}
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) < minFields {
			report.Skipped++
			continue
		}
		kind, ok := entities.ParseKind(record[0])
		if !ok {
			report.Skipped++
			continue
		}

		item, err := decodeItem(kind, record)
		if err != nil {
			report.Errors = append(report.Errors, &LineError{Line: line, Err: err})
			continue
		}
		report.Items = append(report.Items, item)
	}

	return report, nil
}

func decodeItem(kind entities.Kind, record []string) (entities.Item, error) {
	title := record[1]

	year, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, &entities.ValidationError{Field: "Year", Message: fmt.Sprintf("%q is not a year", record[2])}
	}

	acquired, err := entities.ParseDate(record[3])
	if err != nil {
		return nil, &entities.ValidationError{Field: "AcquisitionDate", Message: err.Error()}
	}

	switch kind {
	case entities.KindBook:
		return entities.NewBook(title, year, acquired, record[4])
	case entities.KindAudiobook:
		bounds := strings.Split(record[4], windowSeparator)
		if len(bounds) != 2 {
			return nil, &entities.ValidationError{Field: "InfoExtra", Message: "expected availability window as start|end"}
		}
		start, err := entities.ParseDate(bounds[0])
		if err != nil {
			return nil, &entities.ValidationError{Field: "AvailabilityStart", Message: err.Error()}
		}
		end, err := entities.ParseDate(bounds[1])
		if err != nil {
			return nil, &entities.ValidationError{Field: "AvailabilityEnd", Message: err.Error()}
		}
		return entities.NewAudiobook(title, year, acquired, start, end)
	default:
		return nil, fmt.Errorf("unsupported kind %q", kind)
	}
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

// ExportFile writes items to path, replacing any existing file.
func ExportFile(path string, items []entities.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Encode(f, items); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportFile decodes the catalog file at path.
func ImportFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}
