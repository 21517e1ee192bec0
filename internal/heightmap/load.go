package heightmap

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/x448/float16"
)

// Format identifies the on-disk encoding of a heightmap dump.
type Format string

const (
	// FormatF32 is raw little-endian float32 samples.
	FormatF32 Format = "f32"
	// FormatF16 is raw little-endian IEEE 754 half-precision samples, as
	// read back from half-float GPU storage buffers.
	FormatF16 Format = "f16"
	// FormatNPY is a NumPy .npy file holding a C-ordered '<f4' array.
	FormatNPY Format = "npy"
)

// zstdSuffix marks a dump that is zstd-compressed on top of its format.
const zstdSuffix = ".zst"

var (
	// ErrUnknownFormat is returned for an unsupported Format value.
	ErrUnknownFormat = errors.New("unknown heightmap format")
	// ErrCorruptData is returned when a dump cannot be decoded.
	ErrCorruptData = errors.New("corrupt heightmap data")
)

var npyMagic = []byte("\x93NUMPY")

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatF32, FormatF16, FormatNPY:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath guesses the format from a file name, ignoring a trailing
// .zst. Unknown extensions fall back to FormatF32.
func FormatFromPath(path string) Format {
	name := strings.TrimSuffix(strings.ToLower(path), zstdSuffix)
	switch filepath.Ext(name) {
	case ".f16", ".half":
		return FormatF16
	case ".npy":
		return FormatNPY
	default:
		return FormatF32
	}
}

// Load reads a heightmap dump from path. Files ending in .zst are
// decompressed first.
func Load(path string, format Format) ([]float32, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open heightmap: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(strings.ToLower(path), zstdSuffix) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	hm, err := Decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return hm, nil
}

// Decode reads every sample from r. It does not check the sample count
// against the grid; the analyzer does that.
func Decode(r io.Reader, format Format) ([]float32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatF32:
		return decodeF32(raw)
	case FormatF16:
		return decodeF16(raw)
	case FormatNPY:
		return decodeNPY(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Encode writes hm to w as raw f32 or f16 samples.
func Encode(w io.Writer, hm []float32, format Format) error {
	var buf []byte
	switch format {
	case FormatF32:
		buf = make([]byte, 4*len(hm))
		for i, v := range hm {
			binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
		}
	case FormatF16:
		buf = make([]byte, 2*len(hm))
		for i, v := range hm {
			binary.LittleEndian.PutUint16(buf[2*i:], float16.Fromfloat32(v).Bits())
		}
	default:
		return fmt.Errorf("%w: cannot encode %q", ErrUnknownFormat, format)
	}
	_, err := w.Write(buf)
	return err
}

// EncodeZstd writes hm like Encode, wrapped in a zstd stream.
func EncodeZstd(w io.Writer, hm []float32, format Format) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := Encode(enc, hm, format); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func decodeF32(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of float32 samples", ErrCorruptData, len(raw))
	}
	hm := make([]float32, len(raw)/4)
	for i := range hm {
		hm[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return hm, nil
}

func decodeF16(raw []byte) ([]float32, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of float16 samples", ErrCorruptData, len(raw))
	}
	hm := make([]float32, len(raw)/2)
	for i := range hm {
		hm[i] = float16.Frombits(binary.LittleEndian.Uint16(raw[2*i:])).Float32()
	}
	return hm, nil
}

// decodeNPY accepts format versions 1.x to 3.x with a little-endian
// float32 payload in C order.
func decodeNPY(raw []byte) ([]float32, error) {
	if len(raw) < 10 || !bytes.HasPrefix(raw, npyMagic) {
		return nil, fmt.Errorf("%w: missing .npy magic", ErrCorruptData)
	}
	major := raw[6]
	var headerLen, offset int
	switch major {
	case 1:
		headerLen, offset = int(binary.LittleEndian.Uint16(raw[8:10])), 10
	case 2, 3:
		if len(raw) < 12 {
			return nil, fmt.Errorf("%w: truncated .npy header", ErrCorruptData)
		}
		headerLen, offset = int(binary.LittleEndian.Uint32(raw[8:12])), 12
	default:
		return nil, fmt.Errorf("%w: unsupported .npy version %d", ErrCorruptData, major)
	}
	if offset+headerLen > len(raw) {
		return nil, fmt.Errorf("%w: truncated .npy header", ErrCorruptData)
	}
	header := string(raw[offset : offset+headerLen])

	if !strings.Contains(header, "'descr': '<f4'") {
		return nil, fmt.Errorf("%w: only little-endian float32 .npy arrays are supported", ErrCorruptData)
	}
	if strings.Contains(header, "'fortran_order': True") {
		return nil, fmt.Errorf("%w: fortran-ordered .npy arrays are not supported", ErrCorruptData)
	}
	count, err := npyElementCount(header)
	if err != nil {
		return nil, err
	}

	hm, err := decodeF32(raw[offset+headerLen:])
	if err != nil {
		return nil, err
	}
	if len(hm) != count {
		return nil, fmt.Errorf("%w: .npy shape holds %d samples, payload has %d", ErrCorruptData, count, len(hm))
	}
	return hm, nil
}

func npyElementCount(header string) (int, error) {
	i := strings.Index(header, "'shape':")
	if i < 0 {
		return 0, fmt.Errorf("%w: .npy header has no shape", ErrCorruptData)
	}
	rest := header[i:]
	open, end := strings.IndexByte(rest, '('), strings.IndexByte(rest, ')')
	if open < 0 || end < open {
		return 0, fmt.Errorf("%w: malformed .npy shape", ErrCorruptData)
	}
	count := 1
	for _, dim := range strings.Split(rest[open+1:end], ",") {
		dim = strings.TrimSpace(dim)
		if dim == "" {
			continue
		}
		n, err := strconv.Atoi(dim)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: bad .npy dimension %q", ErrCorruptData, dim)
		}
		count *= n
	}
	return count, nil
}
