package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Umidjon1990/Shartnoma/internal/contract"
	"github.com/Umidjon1990/Shartnoma/internal/template"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Block
	}{
		{"section header", "1. SHARTNOMA PREDMETI", Block{Kind: SectionHeader, Index: 1, Title: "SHARTNOMA PREDMETI"}},
		{"section header with apostrophe", "2. O'QUV JARAYONI VA SHARTLARI", Block{Kind: SectionHeader, Index: 2, Title: "O'QUV JARAYONI VA SHARTLARI"}},
		{"clause is a paragraph", "1.1. O'quv Markazi O'quvchini o'qitish majburiyatini oladi.", Block{Kind: Paragraph, Text: "1.1. O'quv Markazi O'quvchini o'qitish majburiyatini oladi."}},
		{"mixed case is not a header", "3. Tomonlarning majburiyatlari", Block{Kind: Paragraph, Text: "3. Tomonlarning majburiyatlari"}},
		{"address line suppressed", "Manzil: Namangan vil., Uychi tum.", Block{Kind: Suppressed, Text: "Manzil: Namangan vil., Uychi tum."}},
		{"tax id suppressed", "INN: 312 316 714", Block{Kind: Suppressed, Text: "INN: 312 316 714"}},
		{"title line suppressed", "SHARTNOMA № CN-2025-001", Block{Kind: Suppressed, Text: "SHARTNOMA № CN-2025-001"}},
		{"date line suppressed", "Toshkent sh.              01.09.2025", Block{Kind: Suppressed, Text: "Toshkent sh.              01.09.2025"}},
		{"blank", "", Block{Kind: Spacer}},
		{"whitespace only", "   \t ", Block{Kind: Spacer}},
		{"plain paragraph", "  Ushbu shartnoma ikki nusxada tuzildi.  ", Block{Kind: Paragraph, Text: "Ushbu shartnoma ikki nusxada tuzildi."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyLine(tt.line))
		})
	}
}

func TestClassifyOneBlockPerLine(t *testing.T) {
	text := "1. BIRINCHI\n\nmatn\nManzil: x"
	blocks := Classify(text)
	require.Len(t, blocks, 4)
	assert.Equal(t, SectionHeader, blocks[0].Kind)
	assert.Equal(t, Spacer, blocks[1].Kind)
	assert.Equal(t, Paragraph, blocks[2].Kind)
	assert.Equal(t, Suppressed, blocks[3].Kind)
}

func TestClassifyIdempotentOverReconstruction(t *testing.T) {
	filled := template.Fill(template.Default, contract.Fields{
		Name: "Aziz Azizov", Age: "20", Course: "B1-B2", Format: "Online",
		Date: "01.09.2025", Number: "CN-2025-007",
	})
	first := Classify(filled)

	lines := make([]string, len(first))
	for i, b := range first {
		lines[i] = b.Source()
	}
	second := Classify(strings.Join(lines, "\n"))

	assert.Equal(t, first, second)
}

func TestClassifyDefaultTemplateSections(t *testing.T) {
	blocks := Classify(template.Fill(template.Default, contract.Fields{}))

	var headers []int
	for _, b := range blocks {
		if b.Kind == SectionHeader {
			headers = append(headers, b.Index)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, headers)
}
