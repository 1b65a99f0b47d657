package goldmark

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

// tagKind classifies a component tag.
type tagKind uint8

const (
	tagOpen tagKind = iota
	tagClose
	tagSelfClose
)

// componentTag is a single parsed component tag.
type componentTag struct {
	kind  tagKind
	name  string
	attrs []mdast.Attribute
}

// IsHTMLElement reports whether name is a known HTML element or attribute
// name. Matching is case-insensitive.
func IsHTMLElement(name string) bool {
	return atom.Lookup([]byte(strings.ToLower(name))) != 0
}

// parseTag parses input as exactly one tag, ignoring surrounding whitespace.
// Recognized forms:
//   - <Name attr="v" bare> - open tag
//   - </Name> - close tag
//   - <Name attr=v /> - self-closing tag
//
// Attribute values may be double-quoted, single-quoted or bare. A key
// without "=" gets the value "true". Character references in values are
// decoded.
func parseTag(input string) (componentTag, bool) {
	input = strings.TrimSpace(input)
	if len(input) < 3 || input[0] != '<' || input[len(input)-1] != '>' {
		return componentTag{}, false
	}

	pos := 1
	var tag componentTag
	if input[pos] == '/' {
		tag.kind = tagClose
		pos++
	}

	nameStart := pos
	if pos >= len(input) || !isASCIILetter(input[pos]) {
		return componentTag{}, false
	}
	for pos < len(input) && isTagNameChar(input[pos]) {
		pos++
	}
	tag.name = input[nameStart:pos]

	if tag.kind == tagClose {
		pos = skipSpace(input, pos)
		if pos != len(input)-1 {
			return componentTag{}, false
		}
		return tag, true
	}

	for {
		afterSpace := skipSpace(input, pos)
		switch {
		case afterSpace >= len(input):
			return componentTag{}, false
		case input[afterSpace] == '>':
			return tag, afterSpace == len(input)-1
		case input[afterSpace] == '/':
			if afterSpace+2 != len(input) || input[afterSpace+1] != '>' {
				return componentTag{}, false
			}
			tag.kind = tagSelfClose
			return tag, true
		}

		// Attributes must be separated from the name and from each other.
		if afterSpace == pos {
			return componentTag{}, false
		}
		pos = afterSpace

		attr, next, ok := parseAttribute(input, pos)
		if !ok {
			return componentTag{}, false
		}
		tag.attrs = append(tag.attrs, attr)
		pos = next
	}
}

// parseAttribute parses one key[=value] pair starting at pos.
func parseAttribute(input string, pos int) (mdast.Attribute, int, bool) {
	keyStart := pos
	for pos < len(input) && isAttrKeyChar(input[pos]) {
		pos++
	}
	if pos == keyStart {
		return mdast.Attribute{}, pos, false
	}
	attr := mdast.Attribute{Name: input[keyStart:pos], Value: "true"}

	eq := skipSpace(input, pos)
	if eq >= len(input) || input[eq] != '=' {
		return attr, pos, true
	}
	pos = skipSpace(input, eq+1)
	if pos >= len(input) {
		return mdast.Attribute{}, pos, false
	}

	if quote := input[pos]; quote == '"' || quote == '\'' {
		value, next, ok := parseQuotedValue(input, pos)
		if !ok {
			return mdast.Attribute{}, pos, false
		}
		attr.Value = html.UnescapeString(value)
		return attr, next, true
	}

	valueStart := pos
	for pos < len(input) && !unicode.IsSpace(rune(input[pos])) && input[pos] != '>' &&
		!(input[pos] == '/' && pos+1 < len(input) && input[pos+1] == '>') {
		pos++
	}
	if pos == valueStart {
		return mdast.Attribute{}, pos, false
	}
	attr.Value = html.UnescapeString(input[valueStart:pos])
	return attr, pos, true
}

// parseQuotedValue reads a quoted value starting at the quote character.
// A backslash before the quote character escapes it.
func parseQuotedValue(input string, pos int) (string, int, bool) {
	quote := input[pos]
	pos++
	var value strings.Builder
	start := pos

	for pos < len(input) {
		switch {
		case input[pos] == quote:
			value.WriteString(input[start:pos])
			return value.String(), pos + 1, true
		case input[pos] == '\\' && pos+1 < len(input) && input[pos+1] == quote:
			value.WriteString(input[start:pos])
			value.WriteByte(quote)
			pos += 2
			start = pos
		default:
			pos++
		}
	}

	return "", pos, false
}

func skipSpace(input string, pos int) int {
	for pos < len(input) && unicode.IsSpace(rune(input[pos])) {
		pos++
	}
	return pos
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameChar(c byte) bool {
	return isASCIILetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.'
}

func isAttrKeyChar(c byte) bool {
	return isTagNameChar(c) || c == ':' || c == '@'
}
