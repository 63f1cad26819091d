// Package contract defines the structured data a contract document is
// generated from, together with the blank-fill defaults, input validation and
// filename rules shared by every rendering strategy.
package contract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Fields holds the six substitutable values of a contract instance.
// Date and Number are optional; Normalize resolves their defaults.
type Fields struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Course string `json:"course"`
	Format string `json:"format"`
	Date   string `json:"date,omitempty"`
	Number string `json:"number,omitempty"`
}

// Blank-fill defaults used when a field is empty. These appear both in the
// filled template body and in the structured party blocks of the composed
// document, so they live here rather than in the filler.
const (
	BlankName   = "___________"
	BlankAge    = "___"
	BlankCourse = "___________"
	BlankFormat = "Online"
	BlankNumber = "DRAFT"
	BlankPerson = "F.I.SH"
)

// DateLayout is the uz-UZ day-first date ordering.
const DateLayout = "02.01.2006"

const (
	minNameLen = 2
	maxNameLen = 200
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// markupStripper removes the characters that could be reflected into the
// print route's query string as markup.
var markupStripper = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")

// Normalize returns a copy with the optional fields resolved: a missing date
// becomes today in DateLayout, a missing number becomes the draft marker.
func (f Fields) Normalize() Fields {
	if f.Date == "" {
		f.Date = time.Now().Format(DateLayout)
	}
	if f.Number == "" {
		f.Number = BlankNumber
	}
	return f
}

// Sanitize strips markup-significant characters from every field.
func (f Fields) Sanitize() Fields {
	f.Name = markupStripper.Replace(f.Name)
	f.Age = markupStripper.Replace(f.Age)
	f.Course = markupStripper.Replace(f.Course)
	f.Format = markupStripper.Replace(f.Format)
	f.Date = markupStripper.Replace(f.Date)
	f.Number = markupStripper.Replace(f.Number)
	return f
}

// Validate checks the inline-payload constraints of the draft-generation
// path: bounded name length, non-empty course and number.
func (f Fields) Validate() error {
	nameLen := utf8.RuneCountInString(strings.TrimSpace(f.Name))
	if nameLen < minNameLen || nameLen > maxNameLen {
		return fmt.Errorf("name must be between %d and %d characters", minNameLen, maxNameLen)
	}
	if strings.TrimSpace(f.Course) == "" {
		return fmt.Errorf("course must not be empty")
	}
	if strings.TrimSpace(f.Number) == "" {
		return fmt.Errorf("number must not be empty")
	}
	return nil
}

// OrName returns the student name or its blank-fill default.
func (f Fields) OrName() string {
	if f.Name == "" {
		return BlankName
	}
	return f.Name
}

// OrAge returns the age or its blank-fill default.
func (f Fields) OrAge() string {
	if f.Age == "" {
		return BlankAge
	}
	return f.Age
}

// OrCourse returns the course or its blank-fill default.
func (f Fields) OrCourse() string {
	if f.Course == "" {
		return BlankCourse
	}
	return f.Course
}

// OrFormat returns the teaching format or its blank-fill default.
func (f Fields) OrFormat() string {
	if f.Format == "" {
		return BlankFormat
	}
	return f.Format
}

// Filename derives the suggested download name for a generated document:
// Shartnoma_<number>_<student name with whitespace collapsed to underscores>.pdf
func Filename(number, studentName string) string {
	return fmt.Sprintf("Shartnoma_%s_%s.pdf", number, whitespaceRun.ReplaceAllString(strings.TrimSpace(studentName), "_"))
}
