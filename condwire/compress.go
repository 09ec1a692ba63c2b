package condwire

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// frameVersion tags the compressed frame BatchWriter/BatchReader exchange,
// so a future change to the wireGroup/wireField shapes in wire.go can be
// told apart from frames written by an older version of this package.
const frameVersion byte = 1

// BatchWriter encodes conditions to MessagePack (see Encode) and compresses
// the result into a versioned zstd frame. Create one per batch — a
// directory migration, a persisted-cache flush — and reuse it across every
// condition in that batch, so the zstd.Encoder is set up once rather than
// per condition. Each frame is compressed independently (EncodeAll); no
// compression state is shared between frames.
type BatchWriter struct {
	encoder *zstd.Encoder
}

// NewBatchWriter creates a reusable frame writer at the default speed/ratio
// tradeoff. Caller must call Close when the batch is done.
func NewBatchWriter() (*BatchWriter, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("condwire: failed to create zstd encoder: %w", err)
	}
	return &BatchWriter{encoder: encoder}, nil
}

// WriteFrame encodes c and compresses it behind a one-byte frameVersion
// header.
func (w *BatchWriter) WriteFrame(c *condition.Condition) ([]byte, error) {
	data, err := Encode(c)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, 1, 1+len(data)/2)
	dst[0] = frameVersion
	return w.encoder.EncodeAll(data, dst), nil
}

// Close releases the writer's zstd resources.
func (w *BatchWriter) Close() error {
	if w.encoder != nil {
		return w.encoder.Close()
	}
	return nil
}

// BatchReader reverses BatchWriter's frames. Create one per batch and reuse
// it across every frame read from that batch.
type BatchReader struct {
	decoder *zstd.Decoder
}

// NewBatchReader creates a reusable frame reader. Caller must call Close
// when the batch is done.
func NewBatchReader() (*BatchReader, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("condwire: failed to create zstd decoder: %w", err)
	}
	return &BatchReader{decoder: decoder}, nil
}

// ReadFrame reverses BatchWriter.WriteFrame: it checks the frame version,
// decompresses the MessagePack payload, and decodes it against fs (running
// the same invariant checks as Decode).
func (r *BatchReader) ReadFrame(frame []byte, fs fieldset.FieldSet, opts ...Option) (*condition.Condition, error) {
	if len(frame) == 0 {
		return nil, fmt.Errorf("condwire: empty frame")
	}
	if frame[0] != frameVersion {
		return nil, fmt.Errorf("condwire: unsupported frame version %d", frame[0])
	}
	data, err := r.decoder.DecodeAll(frame[1:], nil)
	if err != nil {
		return nil, fmt.Errorf("condwire: failed to decompress frame: %w", err)
	}
	return Decode(data, fs, opts...)
}

// Close releases the reader's zstd resources.
func (r *BatchReader) Close() {
	if r.decoder != nil {
		r.decoder.Close()
	}
}
