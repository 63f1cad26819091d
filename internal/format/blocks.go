// Package format parses filled contract text into a flat sequence of
// renderable blocks. Classification is purely line-content driven and
// identical for every render mode; only the visual treatment of a block
// differs downstream.
package format

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind discriminates the block variants.
type Kind int

const (
	// SectionHeader is a numbered uppercase section title, e.g. "1. SHARTNOMA PREDMETI".
	SectionHeader Kind = iota
	// Paragraph is any other non-empty line, kept as trimmed text.
	Paragraph
	// Spacer is a blank or whitespace-only line.
	Spacer
	// Suppressed is a known boilerplate line rendered by the composer's
	// structured blocks instead of the free-text body.
	Suppressed
)

// Block is one classified input line. Exactly one block is produced per line
// and source order is preserved.
type Block struct {
	Kind  Kind
	Index int    // section number, SectionHeader only
	Title string // section title, SectionHeader only
	Text  string // trimmed line content (Paragraph) or raw line (Suppressed)
}

// Source reconstructs the line a block was classified from. Classifying the
// joined Source lines again yields the same block sequence.
func (b Block) Source() string {
	switch b.Kind {
	case SectionHeader:
		return strconv.Itoa(b.Index) + ". " + b.Title
	case Spacer:
		return ""
	default:
		return b.Text
	}
}

// suppressedPrefixes is the canonical list of boilerplate line prefixes whose
// information the composer renders as structured header/party/footer blocks.
// Matching lines are dropped from the body so it never appears twice.
var suppressedPrefixes = []string{
	"SHARTNOMA №",
	"Toshkent sh.",
	`"Zamonaviy Ta'lim" MCHJ`,
	`MCHJ "Zamonaviy Ta'lim"`,
	"Manzil:",
	"INN:",
	"Bank:",
	"H/r:",
	"MFO:",
	"F.I.SH",
	"Yosh:",
	"Telefon:",
}

var sectionLine = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)

// upperUz maps to upper case with Uzbek rules, so titles in either the Latin
// or the Cyrillic orthography are recognized.
var upperUz = cases.Upper(language.Uzbek)

// Classify splits text into lines and classifies each one, in input order.
func Classify(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, classifyLine(line))
	}
	return blocks
}

func classifyLine(line string) Block {
	trimmed := strings.TrimSpace(line)

	if m := sectionLine.FindStringSubmatch(trimmed); m != nil && isUpperTitle(m[2]) {
		index, _ := strconv.Atoi(m[1])
		return Block{Kind: SectionHeader, Index: index, Title: m[2]}
	}
	for _, prefix := range suppressedPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return Block{Kind: Suppressed, Text: trimmed}
		}
	}
	if trimmed == "" {
		return Block{Kind: Spacer}
	}
	return Block{Kind: Paragraph, Text: trimmed}
}

// isUpperTitle reports whether s is a plausible section title: letters,
// spaces and apostrophes only, with at least one letter and no letter in
// lower case.
func isUpperTitle(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsSpace(r) || r == '\'' || r == '’' || r == 'ʻ' || r == '`':
		default:
			return false
		}
	}
	return hasLetter && upperUz.String(s) == s
}
