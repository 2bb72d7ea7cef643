package tracing

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"
)

// CSVTraceWriter is a writer that stores trace records in a CSV file.
type CSVTraceWriter struct {
	path string
	file *os.File

	records    []Record
	bufferSize int
}

// NewCSVTraceWriter creates a new CSVTraceWriter.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the tracing csv file. If the file already exists, it will be
// overwritten.
func (t *CSVTraceWriter) Init() {
	file, err := os.Create(t.path)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file,
		"ID, Origin, Kind, Address, Value, Bitmask, Outcome, Reason, Issued, Resolved\n")

	atexit.Register(func() {
		t.Flush()
		err := t.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// Write buffers a record for writing to the CSV file.
func (t *CSVTraceWriter) Write(r Record) {
	t.records = append(t.records, r)
	if len(t.records) >= t.bufferSize {
		t.Flush()
	}
}

// Flush flushes the buffered records to the CSV file.
func (t *CSVTraceWriter) Flush() {
	for _, r := range t.records {
		fmt.Fprintf(t.file, "%s, %s, %s, %d, 0x%02x, 0x%02x, %s, %s, %d, %d\n",
			r.ID,
			r.Origin,
			r.Kind,
			r.Address,
			r.Value,
			r.Bitmask,
			r.Outcome,
			r.Reason,
			r.IssuedAt.UnixNano(),
			r.ResolvedAt.UnixNano(),
		)
	}

	t.records = nil
}
