package api

type Project struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TargetMaturity int    `json:"target_maturity"`
}

type Item struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Code       string `json:"code"`
	Title      string `json:"title"`
	Domain     string `json:"domain"`
	Maturity   int    `json:"maturity"`
	StandardID string `json:"standard_id"`
}

type DomainGroup struct {
	Domain      string  `json:"domain"`
	AvgMaturity float64 `json:"avg_maturity"`
	Items       []Item  `json:"items"`
}

type StandardGroup struct {
	StandardID  string        `json:"standard_id"`
	AvgMaturity float64       `json:"avg_maturity"`
	ByDomain    []DomainGroup `json:"by_domain"`
}

type GapOverview struct {
	TotalItems      int     `json:"total_items"`
	AverageMaturity float64 `json:"average_maturity"`
	CompliantCount  int     `json:"compliant_count"`
	GapPercentage   float64 `json:"gap_percentage"`
}

type DistributionBucket struct {
	Level int    `json:"level"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ItemGap struct {
	Item
	Gap      int    `json:"gap"`
	Severity string `json:"severity"`
}

type GapReport struct {
	ProjectID            string               `json:"project_id"`
	Kind                 string               `json:"kind"`
	TargetMaturity       int                  `json:"target_maturity"`
	Overall              GapOverview          `json:"overall"`
	ByStandard           []StandardGroup      `json:"by_standard"`
	MaturityDistribution []DistributionBucket `json:"maturity_distribution"`
	TopGaps              []ItemGap            `json:"top_gaps"`
}

type SoAEntry struct {
	ID                   string  `json:"id"`
	ControlID            string  `json:"control_id"`
	Applicable           bool    `json:"applicable"`
	ImplementationStatus *string `json:"implementation_status"`
	Justification        *string `json:"justification"`
}

type SoASummary struct {
	Total                    int     `json:"total"`
	Applicable               int     `json:"applicable"`
	NotApplicable            int     `json:"not_applicable"`
	Implemented              int     `json:"implemented"`
	PartiallyImplemented     int     `json:"partially_implemented"`
	NotImplemented           int     `json:"not_implemented"`
	ImplementationPercentage float64 `json:"implementation_percentage"`
}

type SoAStatement struct {
	ProjectID string     `json:"project_id"`
	Summary   SoASummary `json:"summary"`
	Entries   []SoAEntry `json:"entries"`
}

type SoAGenerateResult struct {
	ProjectID string `json:"project_id"`
	Created   int    `json:"created"`
}

// SoAEntryPatch is the body of an applicability update. Absent fields are left unchanged;
// ClearStatus removes the implementation status.
type SoAEntryPatch struct {
	Applicable           *bool   `json:"applicable,omitempty"`
	Justification        *string `json:"justification,omitempty"`
	ImplementationStatus *string `json:"implementation_status,omitempty"`
	ClearStatus          bool    `json:"clear_status,omitempty"`
}

type ReadinessReport struct {
	ProjectID             string  `json:"project_id"`
	ProjectName           string  `json:"project_name"`
	RequirementCompliance float64 `json:"requirement_compliance"`
	ControlCompliance     float64 `json:"control_compliance"`
	OpenNCs               int     `json:"open_ncs"`
	PendingActions        int     `json:"pending_actions"`
	OverdueItems          int     `json:"overdue_items"`
	NCPenalty             float64 `json:"nc_penalty"`
	OverduePenalty        float64 `json:"overdue_penalty"`
	ReadinessScore        int     `json:"readiness_score"`
}

type TrendRow struct {
	Month     string `json:"month"`
	Risks     int    `json:"risks"`
	NCs       int    `json:"ncs"`
	Actions   int    `json:"actions"`
	Incidents int    `json:"incidents"`
}

type HeatmapCell struct {
	Domain      string  `json:"domain"`
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	AvgMaturity float64 `json:"avg_maturity"`
	Items       int     `json:"items"`
}

type Error struct {
	Error string `json:"error"`
}
