package process

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrBinary is returned by Detect for content which is not text.
var ErrBinary = errors.New("binary content")

// header size needed by filetype matchers
const headerSize = 262

// Detect classifies data by its leading bytes. It reports whether data is
// a zip archive and fails for any other recognised binary format.
func Detect(data []byte) (bool, error) {
	head := data[:min(len(data), headerSize)]
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return false, nil
	}
	if kind.Extension == "zip" {
		return true, nil
	}
	return false, fmt.Errorf("%w: %s", ErrBinary, kind.MIME.Value)
}

// isArchiveFile checks file header only.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	charsetAt  = []byte(`@charset "`)
)

// charsetLabel returns label of a leading @charset rule, which has to be
// written exactly as `@charset "label";`.
func charsetLabel(data []byte) string {
	if !bytes.HasPrefix(data, charsetAt) {
		return ""
	}
	rest := data[len(charsetAt):]
	end := bytes.Index(rest, []byte(`";`))
	if end <= 0 || end > 40 {
		return ""
	}
	return string(rest[:end])
}

// Decode returns data as UTF-8 and the name of the charset it was decoded
// from. A byte order mark wins over @charset. Unknown labels are an error
// and leave data undecoded.
func Decode(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], "utf-8", nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		name := "utf-16le"
		if bytes.HasPrefix(data, bomUTF16BE) {
			name = "utf-16be"
		}
		out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
		if err != nil {
			return data, name, fmt.Errorf("unable to decode %s: %w", name, err)
		}
		return out, name, nil
	}

	label := charsetLabel(data)
	if label == "" {
		return data, "utf-8", nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return data, label, fmt.Errorf("unsupported charset %q", label)
	}
	// preferred MIME name, IANA primary names look like "iso_8859-1:1987"
	name, err := ianaindex.MIME.Name(enc)
	if err != nil || name == "" {
		name = label
	}
	name = strings.ToLower(name)
	if enc == unicode.UTF8 {
		return data, name, nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return data, name, fmt.Errorf("unable to decode %s: %w", name, err)
	}
	return out, name, nil
}
