package domain

// DomainGroup is a derived aggregate of items sharing a domain label.
type DomainGroup struct {
	Domain  string
	Items   []ScoredItem
	Average float64
}

// StandardGroup is the standard -> domain -> items level of a gap report.
type StandardGroup struct {
	StandardID string
	Average    float64
	Domains    []DomainGroup
}

type GapSeverity string

const (
	GapSeverityOK       GapSeverity = "ok"
	GapSeverityWarning  GapSeverity = "warning"
	GapSeverityCritical GapSeverity = "critical"
)

type ItemGap struct {
	Item     ScoredItem
	Gap      int
	Severity GapSeverity
}

type DistributionBucket struct {
	Level MaturityLevel
	Count int
}

type GapOverview struct {
	TotalItems      int
	AverageMaturity float64
	CompliantCount  int
	GapPercentage   float64
}

// GapReport is the aggregated gap analysis of one project's items against its target maturity.
type GapReport struct {
	ProjectID      string
	Kind           ItemKind
	TargetMaturity MaturityLevel
	Overall        GapOverview
	ByStandard     []StandardGroup
	Distribution   []DistributionBucket
	TopGaps        []ItemGap
}

// ReadinessReport is the certification-readiness estimate of one project.
type ReadinessReport struct {
	ProjectID             string
	ProjectName           string
	RequirementCompliance float64
	ControlCompliance     float64
	OpenNCs               int
	PendingActions        int
	OverdueItems          int
	NCPenalty             float64
	OverduePenalty        float64
	ReadinessScore        int
}

type HeatmapCell struct {
	Domain      string
	ProjectID   string
	ProjectName string
	AvgMaturity float64
	Items       int
}
