package databuf

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownCharset is returned by LookupCharset for names that do not
// resolve to a supported encoding.
var ErrUnknownCharset = errors.New("unknown charset")

// Charset identifies a text encoding used by WriteString, String, StringAt
// and TextWriter. The zero value is UTF-8.
//
// Malformed input and unmappable characters are substituted with the
// encoding's replacement character rather than failing; only an unknown
// charset name is a hard error (see LookupCharset).
type Charset struct {
	name string
	enc  encoding.Encoding
}

// Predefined charsets.
var (
	UTF8        = Charset{"UTF-8", unicode.UTF8}
	UTF16LE     = Charset{"UTF-16LE", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	UTF16BE     = Charset{"UTF-16BE", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
	Latin1      = Charset{"ISO-8859-1", charmap.ISO8859_1}
	Windows1252 = Charset{"windows-1252", charmap.Windows1252}
)

// LookupCharset resolves an IANA charset name ("utf-8", "iso-8859-1",
// "shift_jis", ...) to a Charset. Unknown or unsupported names are rejected
// with ErrUnknownCharset.
func LookupCharset(name string) (Charset, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return Charset{}, fmt.Errorf("databuf: charset %q: %w", name, ErrUnknownCharset)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = name
	}
	return Charset{canonical, enc}, nil
}

// Name returns the charset's canonical name.
func (c Charset) Name() string {
	if c.enc == nil {
		return UTF8.name
	}
	return c.name
}

func (c Charset) encoding() encoding.Encoding {
	if c.enc == nil {
		return unicode.UTF8
	}
	return c.enc
}

// newEncoder returns an encoder that substitutes unmappable characters with
// the encoding's replacement instead of failing.
func (c Charset) newEncoder() *encoding.Encoder {
	return encoding.ReplaceUnsupported(c.encoding().NewEncoder())
}

// newDecoder returns a decoder; x/text decoders substitute malformed bytes
// with U+FFFD.
func (c Charset) newDecoder() *encoding.Decoder {
	return c.encoding().NewDecoder()
}
