// Package langdetect picks a highlighting language for code blocks. A fence
// info string wins when it names a known language; otherwise the content is
// inspected with go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// Source records how a language was chosen.
type Source int

const (
	SourceNone Source = iota
	SourceFence
	SourceShebang
	SourcePattern
	SourceClassifier
)

func (s Source) String() string {
	switch s {
	case SourceFence:
		return "fence"
	case SourceShebang:
		return "shebang"
	case SourcePattern:
		return "pattern"
	case SourceClassifier:
		return "classifier"
	default:
		return "none"
	}
}

// Result is a detected language and how it was found.
type Result struct {
	Language string
	Source   Source
}

// classifierCandidates bounds the classifier to languages that commonly
// appear in documentation.
var classifierCandidates = []string{ //nolint:gochecknoglobals // read-only candidate list
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Resolve returns the language for a code block with the given fence
// language tag and content. An unknown tag falls back to content detection.
func Resolve(fenceLang string, content []byte) Result {
	if lang, ok := FromFence(fenceLang); ok {
		return Result{Language: lang, Source: SourceFence}
	}
	return DetectResult(content)
}

// FromFence normalizes a fence language tag such as "golang" or "sh" through
// go-enry's alias table.
func FromFence(tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}
	if lang, ok := enry.GetLanguageByAlias(tag); ok {
		return normalize(lang), true
	}
	return "", false
}

// Detect returns the detected language for code content, or Text.
func Detect(content []byte) string {
	return DetectResult(content).Language
}

// DetectResult is Detect with the detection source.
func DetectResult(content []byte) Result {
	if len(bytes.TrimSpace(content)) == 0 {
		return Result{Language: Text}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Result{Language: normalize(lang), Source: SourceShebang}
	}

	if lang := detectByPattern(content); lang != "" {
		return Result{Language: lang, Source: SourcePattern}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Result{Language: normalize(lang), Source: SourceClassifier}
	}

	return Result{Language: Text}
}

// pattern is a cheap, highly indicative check run before the classifier.
type pattern struct {
	lang  string
	match func(content, trimmed []byte) bool
}

// patterns are checked in order of specificity.
var patterns = []pattern{ //nolint:gochecknoglobals // read-only rule table
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(content, _ []byte) bool {
		s := string(content)
		if strings.Contains(s, "def ") && strings.Contains(s, "):") {
			return true
		}
		if strings.Contains(s, "import ") && !strings.Contains(s, "import (") &&
			(strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ")) {
			return true
		}
		return strings.Contains(s, "__name__") || strings.Contains(s, "__main__")
	}},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(content, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(containsAll(content, "\nFROM ", "\nRUN ")) ||
			(containsAll(content, "WORKDIR ", "COPY "))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := bytes.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if bytes.HasPrefix(upper, []byte(kw)) {
				return true
			}
		}
		return false
	}},
	{"rust", func(content, _ []byte) bool {
		return containsAny(content, "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(content, _ []byte) bool {
		return containsAny(content, "=>", "const ", "let ", "console.log")
	}},
	{"yaml", func(content, _ []byte) bool {
		return yamlKeys(content) >= 2
	}},
}

func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	for _, p := range patterns {
		if p.match(content, trimmed) {
			return p.lang
		}
	}
	return ""
}

// yamlKeys counts lines that look like "key: value" or root list items.
func yamlKeys(content []byte) int {
	count := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!containsAny(line, "(", "{") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count
}

func containsAny(b []byte, subs ...string) bool {
	for _, s := range subs {
		if bytes.Contains(b, []byte(s)) {
			return true
		}
	}
	return false
}

func containsAll(b []byte, subs ...string) bool {
	for _, s := range subs {
		if !bytes.Contains(b, []byte(s)) {
			return false
		}
	}
	return true
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
