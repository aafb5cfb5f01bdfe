package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"

	"github.com/BielosX/wombat/home-scraper/src/parquet"
	"github.com/BielosX/wombat/home-scraper/src/utils"
	"github.com/xitongsys/parquet-go-source/buffer"
)

// UsageWriter renders parquet.UsageRow values as CSV, taking column names
// from the parquet tags so both exports share one schema.
type UsageWriter struct {
	buffer *buffer.BufferFile
	writer *csv.Writer
	fields []reflect.StructField
}

const InitialCapacity = 1024 * 1024

func NewUsageWriter() *UsageWriter {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	return &UsageWriter{
		buffer: bufferFile,
		writer: csv.NewWriter(bufferFile),
		fields: utils.GetFields(parquet.UsageRow{}),
	}
}

func (w *UsageWriter) Header() []string {
	names := make([]string, 0, len(w.fields))
	for _, field := range w.fields {
		properties := utils.ParquetTagToKeyValue(field.Tag.Get("parquet"))
		name, ok := properties["name"]
		if !ok {
			name = field.Name
		}
		names = append(names, name)
	}
	return names
}

func (w *UsageWriter) WriteHeader() error {
	return w.writer.Write(w.Header())
}

func (w *UsageWriter) Write(row parquet.UsageRow) error {
	value := reflect.ValueOf(row)
	converted := make([]string, 0, len(w.fields))
	for _, field := range w.fields {
		converted = append(converted, fmt.Sprint(value.FieldByName(field.Name).Interface()))
	}
	return w.writer.Write(converted)
}

func (w *UsageWriter) Finish() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return err
	}
	_, err := w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *UsageWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *UsageWriter) Bytes() []byte {
	return w.buffer.Bytes()
}
