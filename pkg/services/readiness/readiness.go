// Package readiness estimates certification readiness as a weighted 0-100 score.
package readiness

import (
	"math"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/maturity"
)

// Compliance terms carry 70% of the weight because they measure actual
// requirement and control maturity. Each penalty term carries 15%: open
// findings and missed deadlines degrade the score but cannot zero it out on
// their own unless compliance is also low.
const (
	RequirementWeight = 0.40
	ControlWeight     = 0.30
	NCWeight          = 0.15
	OverdueWeight     = 0.15

	// NCPenaltyStep is deducted from the nonconformity term per open nonconformity.
	NCPenaltyStep = 15
	// OverduePenaltyStep is deducted from the overdue term per overdue action plan.
	OverduePenaltyStep = 20

	MinScore = 0
	MaxScore = 100
)

// Input is the per-project snapshot the score is computed from.
type Input struct {
	ProjectID           string
	ProjectName         string
	Requirements        []domain.ScoredItem
	Controls            []domain.ScoredItem
	OpenNonconformities int
	PendingActions      int
	OverdueActions      int
}

// CountActions returns how many plans are still open and how many of those are past due at now.
func CountActions(plans []domain.ActionPlan, now time.Time) (pending, overdue int) {
	for _, p := range plans {
		if p.Status.Closed() {
			continue
		}
		pending++
		if p.Overdue(now) {
			overdue++
		}
	}
	return pending, overdue
}

// CompliancePercentage returns the share of compliant items, 0 when there are none.
func CompliancePercentage(items []domain.ScoredItem) float64 {
	if len(items) == 0 {
		return 0
	}
	return 100 * float64(maturity.CompliantCount(items)) / float64(len(items))
}

// Penalty returns the 0-100 penalty term for count occurrences at step points each.
func Penalty(count, step int) float64 {
	if count <= 0 {
		return 100
	}
	return math.Max(0, float64(100-count*step))
}

// Score computes the readiness report of one project.
func Score(in Input) (domain.ReadinessReport, error) {
	if err := validate(in); err != nil {
		return domain.ReadinessReport{}, err
	}

	requirementCompliance := CompliancePercentage(in.Requirements)
	controlCompliance := CompliancePercentage(in.Controls)
	ncPenalty := Penalty(in.OpenNonconformities, NCPenaltyStep)
	overduePenalty := Penalty(in.OverdueActions, OverduePenaltyStep)

	raw := requirementCompliance*RequirementWeight +
		controlCompliance*ControlWeight +
		ncPenalty*NCWeight +
		overduePenalty*OverdueWeight

	return domain.ReadinessReport{
		ProjectID:             in.ProjectID,
		ProjectName:           in.ProjectName,
		RequirementCompliance: requirementCompliance,
		ControlCompliance:     controlCompliance,
		OpenNCs:               in.OpenNonconformities,
		PendingActions:        in.PendingActions,
		OverdueItems:          in.OverdueActions,
		NCPenalty:             ncPenalty,
		OverduePenalty:        overduePenalty,
		ReadinessScore:        clamp(int(math.Round(raw)), MinScore, MaxScore),
	}, nil
}

func validate(in Input) error {
	if in.OpenNonconformities < 0 {
		return domain.InvalidField("open_nonconformities", in.OpenNonconformities)
	}
	if in.PendingActions < 0 {
		return domain.InvalidField("pending_actions", in.PendingActions)
	}
	if in.OverdueActions < 0 {
		return domain.InvalidField("overdue_actions", in.OverdueActions)
	}
	if err := domain.ValidateItems(in.Requirements); err != nil {
		return err
	}
	return domain.ValidateItems(in.Controls)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
