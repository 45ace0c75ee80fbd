package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", domain.InvalidField("output", s)
	}
}

// TableConfig holds the column widths of every table the reporter prints.
type TableConfig struct {
	CodeWidth     int
	TitleWidth    int
	DomainWidth   int
	NumberWidth   int
	ProjectWidth  int
	StandardWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CodeWidth:     12,
		TitleWidth:    40,
		DomainWidth:   24,
		NumberWidth:   10,
		ProjectWidth:  28,
		StandardWidth: 16,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
	format Format
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
		format: FormatText,
	}
}

func (c *Reporter) SetFormat(format Format) {
	c.format = format
}

func (c *Reporter) GapReport(report api.GapReport) error {
	cfg := c.config
	tmpl := `
Gap report: {{.ProjectID}} ({{.Kind}}, target maturity {{.TargetMaturity}})

Items: {{.Overall.TotalItems}}
Average maturity: {{printf "%.2f" .Overall.AverageMaturity}}
Compliant: {{.Overall.CompliantCount}}
Gap: {{printf "%.2f" .Overall.GapPercentage}}%

=== Maturity distribution ===
{{range .MaturityDistribution}}{{.Level}} {{.Label}}: {{.Count}}
{{end}}
=== By standard ===
{{range .ByStandard}}{{.StandardID}} (avg {{printf "%.2f" .AvgMaturity}})
{{range .ByDomain}}  {{.Domain}}: {{printf "%.2f" .AvgMaturity}} ({{len .Items}} items)
{{end}}{{end}}
=== Top gaps ===
{{separator}}
{{row "Code" "Title" "Domain" "Maturity" "Gap" "Severity"}}
{{separator}}
{{range .TopGaps}}{{row .Code .Title .Domain .Maturity .Gap .Severity}}
{{end}}{{separator}}
`
	return c.emit("gap", tmpl,
		[]int{cfg.CodeWidth, cfg.TitleWidth, cfg.DomainWidth, cfg.NumberWidth, cfg.NumberWidth, cfg.NumberWidth},
		report)
}

func (c *Reporter) SoAStatement(statement api.SoAStatement) error {
	cfg := c.config
	tmpl := `
Statement of applicability: {{.ProjectID}}

Controls: {{.Summary.Total}} ({{.Summary.Applicable}} applicable, {{.Summary.NotApplicable}} excluded)
Implemented: {{.Summary.Implemented}}
Partially implemented: {{.Summary.PartiallyImplemented}}
Not implemented: {{.Summary.NotImplemented}}
Implementation: {{printf "%.2f" .Summary.ImplementationPercentage}}%

{{separator}}
{{row "Control" "Applicable" "Status" "Justification"}}
{{separator}}
{{range .Entries}}{{row .ControlID (yesno .Applicable) (deref .ImplementationStatus) (deref .Justification)}}
{{end}}{{separator}}
`
	return c.emit("soa", tmpl,
		[]int{cfg.ProjectWidth, cfg.NumberWidth, cfg.DomainWidth, cfg.TitleWidth},
		statement)
}

func (c *Reporter) SoAGenerated(result api.SoAGenerateResult) error {
	tmpl := `Created {{.Created}} SoA entries for project {{.ProjectID}}
`
	return c.emit("soa-generate", tmpl, nil, result)
}

func (c *Reporter) Readiness(reports []api.ReadinessReport) error {
	cfg := c.config
	tmpl := `
Certification readiness

{{separator}}
{{row "Project" "Score" "Req %" "Ctrl %" "Open NCs" "Pending" "Overdue"}}
{{separator}}
{{range .}}{{row .ProjectName .ReadinessScore (pct .RequirementCompliance) (pct .ControlCompliance) .OpenNCs .PendingActions .OverdueItems}}
{{end}}{{separator}}
`
	return c.emit("readiness", tmpl,
		[]int{cfg.ProjectWidth, cfg.NumberWidth, cfg.NumberWidth, cfg.NumberWidth, cfg.NumberWidth, cfg.NumberWidth, cfg.NumberWidth},
		reports)
}

func (c *Reporter) Trends(rows []api.TrendRow) error {
	cfg := c.config
	tmpl := `
Monthly trends

{{separator}}
{{row "Month" "Risks" "NCs" "Actions" "Incidents"}}
{{separator}}
{{range .}}{{row .Month .Risks .NCs .Actions .Incidents}}
{{end}}{{separator}}
`
	return c.emit("trends", tmpl,
		[]int{cfg.NumberWidth, cfg.NumberWidth, cfg.NumberWidth, cfg.NumberWidth, cfg.NumberWidth},
		rows)
}

func (c *Reporter) Heatmap(cells []api.HeatmapCell) error {
	cfg := c.config
	tmpl := `
Control maturity heatmap

{{separator}}
{{row "Domain" "Project" "Avg maturity" "Controls"}}
{{separator}}
{{range .}}{{row .Domain .ProjectName (printf "%.2f" .AvgMaturity) .Items}}
{{end}}{{separator}}
`
	return c.emit("heatmap", tmpl,
		[]int{cfg.DomainWidth, cfg.ProjectWidth, cfg.NumberWidth + 2, cfg.NumberWidth},
		cells)
}

func (c *Reporter) Profiles(profiles []domain.StorageProfile) error {
	cfg := c.config
	type profile struct {
		Name   string `json:"name"`
		Driver string `json:"driver"`
		Path   string `json:"path"`
	}
	rows := make([]profile, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, profile{Name: p.Name, Driver: string(p.Driver), Path: p.Path})
	}

	tmpl := `{{separator}}
{{row "Profile" "Driver" "Path"}}
{{separator}}
{{range .}}{{row .Name .Driver .Path}}
{{end}}{{separator}}
`
	return c.emit("profiles", tmpl,
		[]int{cfg.StandardWidth, cfg.NumberWidth, cfg.TitleWidth},
		rows)
}

func (c *Reporter) emit(name, tmpl string, widths []int, data any) error {
	if c.format == FormatJSON {
		enc := json.NewEncoder(c.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	funcMap := template.FuncMap{
		"row": func(values ...any) string {
			return formatRow(widths, values)
		},
		"separator": func() string {
			return separator(widths)
		},
		"yesno": func(b bool) string {
			if b {
				return "yes"
			}
			return "no"
		},
		"deref": func(s *string) string {
			if s == nil {
				return "-"
			}
			return *s
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}

	t, err := template.New(name).Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, data)
}

func formatRow(widths []int, values []any) string {
	var b strings.Builder
	b.WriteString("|")
	for i, v := range values {
		width := 0
		if i < len(widths) {
			width = widths[i]
		}
		fmt.Fprintf(&b, " %-*s |", width, truncate(fmt.Sprint(v), width))
	}
	return b.String()
}

func separator(widths []int) string {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	return b.String()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
