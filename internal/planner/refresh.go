package planner

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	appLog "partyplanner/internal/log"
)

// StartRefresh re-fetches the party list on the given cron schedule
// (standard five-field syntax). An empty spec disables refreshing. The
// returned stop function waits for a running refresh to finish.
//
// Ticks ignore cancellation of ctx; only stop ends the schedule.
func (p *Planner) StartRefresh(ctx context.Context, spec string) (stop func(), err error) {
	if spec == "" {
		return func() {}, nil
	}

	tickCtx := context.WithoutCancel(ctx)
	c := cron.New()
	_, err = c.AddFunc(spec, func() {
		p.LoadParties(tickCtx)
		appLog.Debug("scheduled party refresh done", "count", len(p.State().Parties))
	})
	if err != nil {
		return nil, fmt.Errorf("refresh schedule %q: %w", spec, err)
	}

	c.Start()
	appLog.Info("periodic refresh enabled", "schedule", spec)

	return func() {
		<-c.Stop().Done()
	}, nil
}
