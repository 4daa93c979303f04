package photic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Exporter defines an export interface.
type Exporter interface {
	Write(Sample) error
	Close() error
}

// CSVExporter writes simulation samples to a CSV file.
type CSVExporter struct {
	delimiter string
	hdlr      *os.File
}

var csvHeaders = []string{
	"t",
	"altitude", "velocity", "acceleration",
	"altitude-obs", "acceleration-obs",
	"altitude-kf", "velocity-kf", "acceleration-kf",
	"altitude-dr", "velocity-dr", "acceleration-dr",
}

// Close closes the file.
func (e CSVExporter) Close() (err error) {
	err = e.WriteRawLn(fmt.Sprintf("# Closing date (UTC): %s", time.Now().UTC()))
	if err != nil {
		return
	}
	return e.hdlr.Close()
}

// Write writes the sample to the CSV file.
func (e CSVExporter) Write(s Sample) error {
	vals := make([]string, 0, len(csvHeaders))
	vals = append(vals, fmt.Sprintf("%f", s.T))
	for _, v := range s.Truth {
		vals = append(vals, fmt.Sprintf("%f", v))
	}
	for _, v := range s.Observation {
		vals = append(vals, fmt.Sprintf("%f", v))
	}
	for _, est := range []Matrix{s.Filtered, s.DeadReckoned} {
		for i := 0; i < 3; i++ {
			vals = append(vals, fmt.Sprintf("%f", est.AtVec(i)))
		}
	}
	_, err := e.hdlr.WriteString(strings.Join(vals, e.delimiter) + "\n")
	return err
}

// WriteRawLn writes a raw line to the CSV file.
func (e CSVExporter) WriteRawLn(s string) error {
	_, err := e.hdlr.WriteString(s + "\n")
	return err
}

// Name returns the path of the underlying file.
func (e CSVExporter) Name() string {
	return e.hdlr.Name()
}

// NewCSVExporter initializes a new CSV export.
func NewCSVExporter(dir, filename string) (e *CSVExporter, err error) {
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return
	}
	delimiter := ","
	if _, err = f.WriteString(fmt.Sprintf("# Creation date (UTC): %s\n%s\n", time.Now().UTC(), strings.Join(csvHeaders, delimiter))); err != nil {
		f.Close()
		return nil, err
	}
	e = &CSVExporter{delimiter, f}
	return
}
