package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

//go:embed templates/report.html.tmpl
var htmlReportTemplate string

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"percent": models.FormatPercent,
}).Parse(htmlReportTemplate))

type htmlBlock struct {
	Kind   string
	Title  string
	Detail *models.UnitDetail
}

type htmlPage struct {
	Number int
	Footer string
	Blocks []htmlBlock
}

type htmlData struct {
	Kind        string
	Unit        string
	Period      string
	Generated   string
	Summary     models.PeriodSummary
	Details     []models.UnitDetail
	Steps       []models.StepRow
	Chart       template.HTML
	Pages       []htmlPage
	Attribution string
}

var blockKindNames = map[BlockKind]string{
	BlockSummary:    "summary",
	BlockComparison: "comparison",
	BlockSteps:      "steps",
	BlockUnit:       "unit",
	BlockEmpty:      "empty",
}

// WriteHTML renders the document as a standalone HTML page set. The trend
// chart is omitted when it cannot be drawn.
func WriteHTML(w io.Writer, doc models.ReportDocument, pages []Page) error {
	data := htmlData{
		Kind:        doc.Kind.Name,
		Unit:        doc.UnitLabel,
		Period:      doc.DateRangeLabel,
		Generated:   doc.GeneratedAt.Format("02/01/2006 15:04"),
		Summary:     doc.Summary,
		Details:     doc.Details,
		Steps:       doc.StepBreakdown,
		Attribution: Attribution,
	}
	if svg, err := TrendSVG(doc.Trend); err == nil {
		data.Chart = template.HTML(svg)
	}
	for _, p := range pages {
		hp := htmlPage{Number: p.Number, Footer: p.Footer()}
		for _, b := range p.Blocks {
			hp.Blocks = append(hp.Blocks, htmlBlock{Kind: blockKindNames[b.Kind], Title: b.Title, Detail: b.Detail})
		}
		data.Pages = append(data.Pages, hp)
	}

	if err := htmlTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute report template: %w", err)
	}
	return nil
}

// TrendSVG draws the daily compliance rate against the target line.
func TrendSVG(trend []models.DailyRecord) ([]byte, error) {
	if len(trend) < 2 {
		return nil, fmt.Errorf("trend chart needs at least 2 days, got %d", len(trend))
	}

	xs := make([]float64, len(trend))
	dates := make([]chart.Tick, 0, len(trend))
	ys := make([]float64, len(trend))
	target := make([]float64, len(trend))
	step := max(len(trend)/8, 1)
	for i, r := range trend {
		xs[i] = float64(i)
		ys[i] = r.ComplianceRate
		target[i] = compliance.DefaultTargetRate * 100
		if i%step == 0 {
			dates = append(dates, chart.Tick{Value: float64(i), Label: r.Label()})
		}
	}

	ch := chart.Chart{
		Title:      "Daily compliance",
		Width:      720,
		Height:     260,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 12, Bottom: 10}},
		XAxis:      chart.XAxis{Ticks: dates},
		YAxis: chart.YAxis{
			Name:  "%",
			Range: &chart.ContinuousRange{Min: 50, Max: 100},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Compliance",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("2563eb"), StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Target",
				XValues: xs,
				YValues: target,
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("9ca3af"),
					StrokeWidth:     1,
					StrokeDashArray: []float64{4, 4},
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}
