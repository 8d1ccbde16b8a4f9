package scheduler

import (
	"sync"
	"time"

	"program_reminder_bot/internal/domain/program"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LivePoller re-evaluates which program is on air on a fixed cadence and
// invokes the onChange callback when the answer changes. The poll has no side
// effects of its own; the callback is the display layer's redraw hook. Stop
// must be called when the consuming view is torn down so the repeating job
// does not leak for the process lifetime.
type LivePoller struct {
	cronEngine *cron.Cron
	table      *program.Table
	logger     *logrus.Entry
	cronSpec   string
	onChange   func(live *program.Schedule)

	mu         sync.Mutex
	lastLiveID string
}

func NewLivePoller(
	table *program.Table,
	logger *logrus.Entry,
	cronSpec string, // e.g. "* * * * *" (every minute)
	onChange func(live *program.Schedule),
) *LivePoller {
	return &LivePoller{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		table:      table,
		logger:     logger,
		cronSpec:   cronSpec,
		onChange:   onChange,
	}
}

func (p *LivePoller) Start() error {
	_, err := p.cronEngine.AddFunc(p.cronSpec, p.tick)
	if err != nil {
		return err
	}
	p.cronEngine.Start()
	p.logger.WithField("cron_spec", p.cronSpec).Info("Live-status poller started.")
	return nil
}

func (p *LivePoller) tick() {
	live := p.table.LiveNow(time.Now())
	liveID := ""
	if live != nil {
		liveID = live.ID
	}
	p.mu.Lock()
	changed := liveID != p.lastLiveID
	p.lastLiveID = liveID
	p.mu.Unlock()
	if !changed {
		return
	}

	if live != nil {
		p.logger.WithFields(logrus.Fields{
			"program_id": live.ID,
			"title":      live.Title,
		}).Info("Program went on air.")
	} else {
		p.logger.Info("No program on air.")
	}
	if p.onChange != nil {
		p.onChange(live)
	}
}

func (p *LivePoller) Stop() {
	p.logger.Info("Stopping live-status poller...")
	ctx := p.cronEngine.Stop() // Stops scheduling new ticks, waits for a running one.
	<-ctx.Done()
	p.logger.Info("Live-status poller stopped.")
}
