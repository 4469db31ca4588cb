package source

import (
	"bytes"
	"crypto/sha256"
	"strings"
	"unicode/utf8"
)

// lineStatus mirrors the anomalies found while decoding one line.
type lineStatus uint8

const (
	lineBadRune lineStatus = 1 << iota
	lineNul
)

const replacement = "\uFFFD"

// decodeLine replaces NUL bytes and every byte of an invalid UTF-8 sequence
// with U+FFFD. The width of the result in runes equals the number of
// replaced units, so column positions stay stable.
func decodeLine(raw []byte) (string, lineStatus) {
	var st lineStatus
	if bytes.IndexByte(raw, 0) < 0 && utf8.Valid(raw) {
		if bytes.Contains(raw, []byte(replacement)) {
			st |= lineBadRune
		}
		return string(raw), st
	}

	var b strings.Builder
	b.Grow(len(raw) + 8)
	for i := 0; i < len(raw); {
		c := raw[i]
		if c == 0 {
			b.WriteString(replacement)
			st |= lineNul
			i++
			continue
		}
		if c < utf8.RuneSelf {
			b.WriteByte(c)
			i++
			continue
		}
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteString(replacement)
			st |= lineBadRune
			i++
			continue
		}
		if r == utf8.RuneError {
			st |= lineBadRune
		}
		b.Write(raw[i : i+size])
		i += size
	}
	return b.String(), st
}

// Decode splits content into marker-bracketed lines and records line-ending
// and encoding anomalies. The line count never depends on anomalies.
func Decode(path string, content []byte) *File {
	f := &File{
		Path: path,
		Hash: sha256.Sum256(content),
	}
	parts := bytes.Split(content, []byte{'\n'})
	f.Lines = make([]string, 0, len(parts)+2)
	f.Lines = append(f.Lines, HeadMarker)

	for i, part := range parts {
		linenum := i + 1
		// The piece after the last '\n' has no line ending of its own.
		switch n := len(part); {
		case i == len(parts)-1:
		case n > 0 && part[n-1] == '\r':
			f.CRLFLines = append(f.CRLFLines, linenum)
			part = part[:n-1]
		default:
			f.LFLines++
		}
		line, st := decodeLine(part)
		if st&lineBadRune != 0 {
			f.BadRuneLines = append(f.BadRuneLines, linenum)
		}
		if st&lineNul != 0 {
			f.NulLines = append(f.NulLines, linenum)
		}
		f.Lines = append(f.Lines, line)
	}

	f.Lines = append(f.Lines, TailMarker)
	if f.LFLines > 0 && len(f.CRLFLines) > 0 {
		f.Flags |= FileMixedEOL
	}
	return f
}
