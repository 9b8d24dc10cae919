package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// gameOver is what the screen shows once a session has ended.
type gameOver struct {
	summary runner.Summary
	record  *storage.RunRecord
	best    int
	err     error
}

// historyNotifier records finished sessions. Saving is best effort: a
// failing store is logged and the panel says so, the game carries on.
type historyNotifier struct {
	store      *storage.Store
	logger     *log.Logger
	difficulty string
	seed       int64
	onEnd      func(*gameOver)
}

// SessionEnded implements runner.Notifier.
func (n *historyNotifier) SessionEnded(s runner.Summary) {
	over := &gameOver{summary: s}

	if n.store != nil {
		rec, err := n.store.SaveRun(storage.RunRecord{
			Difficulty: n.difficulty,
			Seed:       n.seed,
			Score:      s.FinalScore,
			Frames:     s.Frames,
			FinalSpeed: s.Speed,
			HitBy:      s.HitBy.String(),
		})
		if err != nil {
			n.logger.Warn("cannot save run", "err", err)
			over.err = err
		} else {
			over.record = &rec
			n.logger.Debug("run saved", "run_id", rec.RunID, "score", rec.Score)
		}

		if best, err := n.store.HighScore(); err != nil {
			n.logger.Warn("cannot read high score", "err", err)
		} else {
			over.best = best
		}
	}

	if n.onEnd != nil {
		n.onEnd(over)
	}
}

var _ runner.Notifier = (*historyNotifier)(nil)
