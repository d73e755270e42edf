package report

import (
	"fmt"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// BlockKind identifies what a laid-out block renders.
type BlockKind int

const (
	BlockSummary BlockKind = iota
	BlockComparison
	BlockSteps
	BlockUnit
	BlockEmpty
)

// Block is one vertically stacked section of a page. Offset and Height are in mm.
type Block struct {
	Kind   BlockKind
	Title  string
	Detail *models.UnitDetail
	Offset float64
	Height float64
}

// Page is one laid-out page with its footer.
type Page struct {
	Number int
	Total  int
	Blocks []Block
}

// Footer returns the page counter line.
func (p Page) Footer() string {
	return fmt.Sprintf("Page %d of %d", p.Number, p.Total)
}

// Layout holds the vertical metrics of an A4 page in mm.
type Layout struct {
	TopMargin     float64
	Threshold     float64
	BlockGap      float64
	HeaderHeight  float64
	RowHeight     float64
	SummaryHeight float64
}

// DefaultLayout mirrors a portrait A4 page with the footer band reserved.
func DefaultLayout() Layout {
	return Layout{
		TopMargin:     20,
		Threshold:     250,
		BlockGap:      10,
		HeaderHeight:  22,
		RowHeight:     7,
		SummaryHeight: 45,
	}
}

// Paginate lays the document out top to bottom, starting a new page whenever
// the running offset would pass the threshold. A block taller than a page is
// placed alone on a fresh page.
func Paginate(doc models.ReportDocument, layout Layout) []Page {
	if layout.Threshold <= layout.TopMargin {
		layout = DefaultLayout()
	}

	pages := []Page{{Number: 1}}
	offset := layout.TopMargin
	place := func(b Block) {
		cur := &pages[len(pages)-1]
		if offset+b.Height > layout.Threshold && len(cur.Blocks) > 0 {
			pages = append(pages, Page{Number: len(pages) + 1})
			cur = &pages[len(pages)-1]
			offset = layout.TopMargin
		}
		b.Offset = offset
		cur.Blocks = append(cur.Blocks, b)
		offset += b.Height + layout.BlockGap
	}

	for _, b := range blocks(doc, layout) {
		place(b)
	}
	for i := range pages {
		pages[i].Total = len(pages)
	}
	return pages
}

func blocks(doc models.ReportDocument, layout Layout) []Block {
	table := func(rows int) float64 {
		return layout.HeaderHeight + float64(rows)*layout.RowHeight
	}

	out := []Block{{Kind: BlockSummary, Title: "Summary", Height: layout.SummaryHeight}}
	if doc.Empty() {
		return append(out, Block{Kind: BlockEmpty, Title: "No data", Height: table(0)})
	}
	if doc.Kind.ID == models.ReportComparative && len(doc.Details) > 1 {
		out = append(out, Block{Kind: BlockComparison, Title: "Unit comparison", Height: table(len(doc.Details))})
	}
	if len(doc.StepBreakdown) > 0 {
		out = append(out, Block{Kind: BlockSteps, Title: "Compliance by step", Height: table(len(doc.StepBreakdown))})
	}
	for i := range doc.Details {
		d := &doc.Details[i]
		// +1 for the totals row
		out = append(out, Block{Kind: BlockUnit, Title: d.Unit.Name, Detail: d, Height: table(len(d.Rows) + 1)})
	}
	return out
}
