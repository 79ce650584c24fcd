package events

import "context"

// Tracker records the two append-only engagement signals per event and serves
// the all-time rollup. Every call is a new observation: increments are never
// deduplicated and counters never decrease.
type Tracker struct {
	repo Repository
}

func NewTracker(repo Repository) *Tracker {
	return &Tracker{repo: repo}
}

// RecordView adds one page view. Returns ErrNotFound for an unknown event;
// the caller decides whether to surface or swallow that.
func (t *Tracker) RecordView(ctx context.Context, id string) error {
	return t.repo.IncrementViews(ctx, id)
}

// RecordRegistrationClick adds one outbound-registration click. Clicks are
// counted even when the registration link is empty or the event is no longer
// upcoming: the counter measures intent, and exposing the click action only
// where it makes sense is the caller's job (see Event.CanRegister).
func (t *Tracker) RecordRegistrationClick(ctx context.Context, id string) error {
	return t.repo.IncrementRegistrationClicks(ctx, id)
}

// Summarize sums both counters across all events.
func (t *Tracker) Summarize(ctx context.Context) (EngagementTotals, error) {
	return t.repo.EngagementTotals(ctx)
}
