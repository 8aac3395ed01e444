package badge

import (
	"time"

	"github.com/sherm18/ThriveOS/internal"
)

// Evaluate runs every catalog rule against the same entry list. Pure:
// identical input always yields identical evaluations.
func Evaluate(entries []internal.SleepEntry) []Evaluation {
	evals := make([]Evaluation, 0, len(catalog))
	for _, def := range catalog {
		evals = append(evals, def.Check(entries))
	}
	return evals
}

// Merge folds fresh evaluations into the previously persisted badge state.
// EarnedDate is stamped (with now's calendar date) only on a false->true
// transition and is never cleared afterwards, so merging the same input
// twice is a no-op. The returned ids are the badges earned just now,
// which the caller uses to drive one-time notifications.
func Merge(prev []internal.BadgeState, evals []Evaluation, now time.Time) ([]internal.BadgeState, []string) {
	prevByID := make(map[string]internal.BadgeState, len(prev))
	for _, p := range prev {
		prevByID[p.BadgeID] = p
	}

	merged := make([]internal.BadgeState, 0, len(evals))
	var newlyEarned []string
	for _, ev := range evals {
		st := internal.BadgeState{
			BadgeID:  ev.BadgeID,
			Earned:   ev.Earned,
			Progress: ev.Progress,
		}
		p, had := prevByID[ev.BadgeID]
		if had {
			st.EarnedDate = p.EarnedDate
		}
		if ev.Earned && (!had || !p.Earned) {
			newlyEarned = append(newlyEarned, ev.BadgeID)
		}
		if ev.Earned && st.EarnedDate == "" {
			st.EarnedDate = now.Format("2006-01-02")
		}
		merged = append(merged, st)
	}
	return merged, newlyEarned
}

// Collection joins the catalog with per-user state, partitioned into
// earned and unearned groups in catalog order.
func Collection(states []internal.BadgeState) (earned, unearned []Badge) {
	byID := make(map[string]internal.BadgeState, len(states))
	for _, s := range states {
		byID[s.BadgeID] = s
	}
	for _, def := range catalog {
		b := Badge{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Category:    def.Category,
			Tier:        def.Tier,
		}
		if s, ok := byID[def.ID]; ok {
			b.Earned = s.Earned
			b.Progress = s.Progress
			b.EarnedDate = s.EarnedDate
		}
		if b.Earned {
			earned = append(earned, b)
		} else {
			unearned = append(unearned, b)
		}
	}
	return earned, unearned
}
