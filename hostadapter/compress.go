package hostadapter

import ("errors"
	"fmt"
	"sync"

	"github.com/gdiazlo/pg-sexp/format"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4")

// Compressor, Decompressor and Codec give the host's optional
// send/recv wire passthrough a pluggable compression slot (// treats any framing/toasting the host applies as transparent;
// a standalone, non-Postgres consumer of send/recv still benefits
// from compressing large values itself).
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

type Codec interface {
	Compressor
	Decompressor
}

// NoOpCodec bypasses compression entirely.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

func (NoOpCodec) Compress(data []byte) ([]byte, error) { return data, nil }
func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }

var zstdDecoderPool = sync.Pool{
	New: func() any {
 d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
 if err != nil {
 panic(fmt.Sprintf("hostadapter: failed to create zstd decoder: %v", err))
 }

 return d
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
 e, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
 if err != nil {
 panic(fmt.Sprintf("hostadapter: failed to create zstd encoder: %v", err))
 }

 return e
	},
}

// ZstdCodec compresses with zstd, using pooled encoders/decoders the
// way the teacher's compress.ZstdCompressor does.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	enc := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
 return nil, nil
	}

	dec := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
 return nil, fmt.Errorf("hostadapter: zstd decompress: %w", err)
	}

	return out, nil
}

var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Codec compresses with LZ4 block format, mirroring the teacher's
// compress.LZ4Compressor including its adaptive decompress buffer
// growth (the compressed stream carries no original-size header).
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
 return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	c, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(data, dst)
	if err != nil {
 return nil, fmt.Errorf("hostadapter: lz4 compress: %w", err)
	}

	return dst[:n], nil
}

func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
 return nil, nil
	}

	const maxSize = 128 * 1024 * 1024

	bufSize := len(data) * 4
	for bufSize <= maxSize {
 buf := make([]byte, bufSize)

 n, err := lz4.UncompressBlock(data, buf)
 if err != nil {
 if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
 bufSize *= 2
 continue
 }

 return nil, fmt.Errorf("hostadapter: lz4 decompress: %w", err)
 }

 return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

// CreateCodec returns the Codec for compressionType, mirroring the
// teacher's compress.CreateCodec factory.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
 return NoOpCodec{}, nil
	case format.CompressionZstd:
 return ZstdCodec{}, nil
	case format.CompressionLZ4:
 return LZ4Codec{}, nil
	default:
 return nil, fmt.Errorf("hostadapter: unknown compression type %v", compressionType)
	}
}
