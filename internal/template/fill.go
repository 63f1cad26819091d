package template

import (
	"strings"

	"github.com/Umidjon1990/Shartnoma/internal/contract"
)

// Fill substitutes every occurrence of the six recognized placeholder tokens
// in tpl with the corresponding field value, falling back to the field's
// blank-fill default when the value is empty. The token set is closed: any
// other {...} sequence passes through untouched. Exact-token replacement
// only, so {name} never matches inside {namex}.
func Fill(tpl string, f contract.Fields) string {
	f = f.Normalize()
	r := strings.NewReplacer(
		"{name}", f.OrName(),
		"{age}", f.OrAge(),
		"{course}", f.OrCourse(),
		"{format}", f.OrFormat(),
		"{date}", f.Date,
		"{number}", f.Number,
	)
	return r.Replace(tpl)
}
