package parquet

import (
	"io"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/writer"
)

type UsageWriter struct {
	buffer *buffer.BufferFile
	writer *writer.ParquetWriter
}

const InitialCapacity = 4 * 1024 * 1024

func NewUsageWriter() (*UsageWriter, error) {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	w, err := writer.NewParquetWriter(bufferFile, new(UsageRow), 4)
	if err != nil {
		return nil, err
	}
	return &UsageWriter{
		buffer: bufferFile,
		writer: w,
	}, nil
}

func (w *UsageWriter) WriteRow(row *UsageRow) error {
	return w.writer.Write(row)
}

// Finish writes the footer and rewinds the buffer for reading.
func (w *UsageWriter) Finish() error {
	if err := w.writer.WriteStop(); err != nil {
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
