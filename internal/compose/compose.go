// Package compose turns contract data and the filled template into one
// renderable document tree. The same logical structure is produced for every
// target; Mode only decides whether sizes are responsive or fixed to the
// capture geometry both rasterizer strategies require.
package compose

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/Umidjon1990/Shartnoma/internal/assets"
	"github.com/Umidjon1990/Shartnoma/internal/contract"
	"github.com/Umidjon1990/Shartnoma/internal/format"
	"github.com/Umidjon1990/Shartnoma/internal/template"
)

// Mode selects the sizing model of the composed document.
type Mode int

const (
	// Interactive sizes the document with responsive units for on-screen display.
	Interactive Mode = iota
	// Capture fixes every size to absolute pixels at the capture page width.
	// Required before handing the document to a rasterizer: the capture step
	// has no viewport to respond to.
	Capture
)

// CaptureWidth is the fixed document width in device pixels under Capture
// mode: 210mm at the rasterizer's assumed 96 DPI.
const CaptureWidth = 794

// CaptureHeight is one A4 page height at the same DPI.
const CaptureHeight = 1123

// ReadyMarkerID is the id of the hidden element signalling that the document
// markup is complete. The headless driver polls for it before printing.
const ReadyMarkerID = "ready-marker"

// Organization identity rendered by the structured header and footer blocks.
// The matching boilerplate lines of the template body are suppressed by the
// section formatter so each fact appears exactly once.
const (
	OrgName      = "Zamonaviy Ta'lim"
	OrgLegalName = `MCHJ "Zamonaviy Ta'lim"`
	OrgSubtitle  = "Innovatsion o'quv markazi"
	OrgAddress   = "Namangan vil., Uychi tum., Bog' MFY"
	OrgTaxID     = "INN: 312 316 714"
	OrgCity      = "Toshkent sh."
)

const (
	colorPrimary = "#1e3a8a"
	colorAccent  = "#2563eb"
	colorMuted   = "#6b7280"
	colorBorder  = "#e5e7eb"
)

// metrics carries the mode-dependent sizes. Interactive uses physical mm and
// percentages; Capture resolves everything to the fixed pixel geometry.
type metrics struct {
	pageWidth  string
	pageHeight string
	padding    string
}

func metricsFor(mode Mode) metrics {
	if mode == Capture {
		return metrics{
			pageWidth:  strconv.Itoa(CaptureWidth) + "px",
			pageHeight: strconv.Itoa(CaptureHeight) + "px",
			padding:    "64px",
		}
	}
	return metrics{
		pageWidth:  "210mm",
		pageHeight: "297mm",
		padding:    "6%",
	}
}

// Compose builds the document tree for the given fields, template text and
// mode. Pure transform: fixed block order, no side effects.
func Compose(f contract.Fields, tpl string, mode Mode) (*html.Node, error) {
	f = f.Normalize()
	m := metricsFor(mode)

	logo, err := assets.LogoDataURI()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare logo: %w", err)
	}

	blocks := format.Classify(template.Fill(tpl, f))

	paper := el("div", attrs{
		a("id", "contract-paper"),
		a("style", "background:#ffffff;color:#000000;margin:0 auto;box-sizing:border-box;"+
			"font-family:Georgia,'Times New Roman',serif;font-size:14px;line-height:1.55;"+
			"width:"+m.pageWidth+";min-height:"+m.pageHeight+";padding:"+m.padding+";"),
	},
		header(f, logo),
		titleBlock(f),
		parties(f),
		body(blocks),
		footer(f),
	)
	return paper, nil
}

// Page wraps the composed document into a complete standalone HTML page,
// including the readiness marker. This is what the print route serves and
// what the capture step rasterizes.
func Page(f contract.Fields, tpl string, mode Mode) (string, error) {
	paper, err := Compose(f, tpl, mode)
	if err != nil {
		return "", err
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(el("html", attrs{a("lang", "uz")},
		el("head", nil,
			el("meta", attrs{a("charset", "utf-8")}),
			el("title", nil, txt("Shartnoma")),
		),
		el("body", attrs{a("style", "margin:0;background:#ffffff;")},
			paper,
			// Composition is synchronous server-side, so the marker is
			// already present at first paint; the headless driver still
			// polls for it as its readiness signal.
			el("div", attrs{a("id", ReadyMarkerID), a("style", "display:none;")}, txt("READY")),
		),
	))
	return Render(doc)
}

func header(f contract.Fields, logoURI string) *html.Node {
	return el("div", attrs{
		a("style", "display:flex;justify-content:space-between;align-items:center;"+
			"border-bottom:2px solid "+colorPrimary+";padding-bottom:24px;margin-bottom:32px;"),
	},
		el("div", attrs{a("style", "display:flex;align-items:center;gap:16px;")},
			el("img", attrs{a("src", logoURI), a("alt", "Logo"), a("style", "height:64px;width:64px;object-fit:contain;")}),
			el("div", nil,
				el("div", attrs{a("style", "font-size:22px;font-weight:bold;color:"+colorPrimary+";text-transform:uppercase;letter-spacing:1px;")},
					txt(OrgName)),
				el("div", attrs{a("style", "font-size:12px;color:"+colorMuted+";")}, txt(OrgSubtitle)),
			),
		),
		el("div", attrs{a("style", "text-align:right;")},
			el("div", attrs{a("style", "font-family:monospace;font-size:12px;color:"+colorMuted+";")}, txt("Shartnoma №")),
			el("div", attrs{
				a("id", "contract-number"),
				a("style", "font-family:monospace;font-size:20px;font-weight:bold;color:"+colorPrimary+";"),
			}, txt(f.Number)),
		),
	)
}

func titleBlock(f contract.Fields) *html.Node {
	return el("div", attrs{a("style", "text-align:center;margin-bottom:24px;")},
		el("div", attrs{a("style", "font-size:18px;font-weight:bold;letter-spacing:2px;")},
			txt("SHARTNOMA № "+f.Number)),
		el("div", attrs{a("style", "font-size:12px;color:"+colorMuted+";margin-top:4px;")},
			txt(OrgCity+", "+f.Date)),
	)
}

func parties(f contract.Fields) *html.Node {
	cell := func(label, value string) *html.Node {
		return el("div", attrs{a("style", "flex:1;text-align:center;padding:8px;border:1px solid " + colorBorder + ";")},
			el("div", attrs{a("style", "font-size:10px;color:"+colorMuted+";text-transform:uppercase;")}, txt(label)),
			el("div", attrs{a("style", "font-size:13px;font-weight:bold;")}, txt(value)),
		)
	}
	return el("div", attrs{a("style", "margin-bottom:24px;")},
		el("div", attrs{a("style", "display:flex;justify-content:space-between;font-size:13px;margin-bottom:12px;")},
			el("div", nil,
				el("span", attrs{a("style", "color:"+colorMuted+";")}, txt("O'quv Markazi: ")),
				el("b", nil, txt(OrgLegalName)),
			),
			el("div", nil,
				el("span", attrs{a("style", "color:"+colorMuted+";")}, txt("O'quvchi: ")),
				el("b", nil, txt(f.OrName())),
			),
		),
		el("div", attrs{a("style", "display:flex;gap:8px;")},
			cell("Kurs", f.OrCourse()),
			cell("Format", f.OrFormat()),
			cell("Yosh", f.OrAge()),
		),
	)
}

func body(blocks []format.Block) *html.Node {
	container := el("div", attrs{a("id", "contract-body"), a("style", "text-align:justify;")})
	for _, b := range blocks {
		switch b.Kind {
		case format.SectionHeader:
			container.AppendChild(el("div", attrs{a("style", "display:flex;align-items:center;gap:10px;margin:18px 0 8px 0;")},
				el("span", attrs{a("style", "display:inline-flex;align-items:center;justify-content:center;" +
					"width:24px;height:24px;border-radius:50%;background:" + colorPrimary + ";color:#ffffff;" +
					"font-size:12px;font-weight:bold;")},
					txt(strconv.Itoa(b.Index))),
				el("span", attrs{a("style", "font-weight:bold;color:" + colorPrimary + ";")}, txt(b.Title)),
			))
		case format.Paragraph:
			container.AppendChild(el("div", attrs{a("style", "margin:4px 0 4px 34px;")}, txt(b.Text)))
		case format.Spacer:
			container.AppendChild(el("div", attrs{a("style", "height:10px;")}))
		case format.Suppressed:
			// rendered by the structured blocks instead
		}
	}
	return container
}

func footer(f contract.Fields) *html.Node {
	column := func(id, heading string, lines []*html.Node, signCaption string) *html.Node {
		children := []*html.Node{
			el("div", attrs{a("style", "font-weight:bold;color:" + colorPrimary + ";margin-bottom:12px;")}, txt(heading)),
		}
		children = append(children, lines...)
		children = append(children,
			el("div", attrs{a("style", "margin-top:36px;position:relative;")},
				el("div", attrs{a("style", "border-bottom:1px solid #000000;width:130px;margin-bottom:4px;")}),
				el("div", attrs{a("style", "font-size:10px;color:#9ca3af;")}, txt(signCaption)),
				seal(),
			),
		)
		return el("div", attrs{a("id", id), a("style", "flex:1;font-size:12px;color:#4b5563;")}, children...)
	}

	left := column("footer-org", "O'QUV MARKAZI", []*html.Node{
		el("div", nil, txt(OrgLegalName)),
		el("div", nil, txt("Manzil: "+OrgAddress)),
		el("div", nil, txt(OrgTaxID)),
	}, "Imzo va muhr")

	right := column("footer-student", "O'QUVCHI", []*html.Node{
		el("div", attrs{a("style", "font-weight:bold;")}, txt(orBlank(f.Name, contract.BlankPerson))),
		el("div", nil, txt("Yosh: "+f.OrAge())),
	}, "Imzo")

	return el("div", attrs{
		a("style", "display:flex;gap:48px;margin-top:56px;padding-top:24px;border-top:1px solid " + colorBorder + ";"),
	}, left, right)
}

// seal is the circular confirmation mark overlaid on a signature line.
func seal() *html.Node {
	return el("div", attrs{
		a("class", "seal"),
		a("style", "position:absolute;top:-56px;left:24px;width:88px;height:88px;" +
			"border:2px solid " + colorAccent + ";border-radius:50%;opacity:0.8;" +
			"transform:rotate(-12deg);display:flex;align-items:center;justify-content:center;"),
	},
		el("div", attrs{a("style", "text-align:center;color:" + colorAccent + ";")},
			el("div", attrs{a("style", "font-size:9px;font-weight:bold;text-transform:uppercase;")}, txt("Tasdiqlandi")),
			el("div", attrs{a("style", "font-size:7px;")}, txt(OrgName)),
		),
	)
}

func orBlank(v, blank string) string {
	if v == "" {
		return blank
	}
	return v
}
