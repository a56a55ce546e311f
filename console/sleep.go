package console

import (
	"context"
	"fmt"
	"time"

	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/spinner"
)

// DefaultSpinnerInterval is the time between spinner frames in Sleep.
const DefaultSpinnerInterval = 100 * time.Millisecond

// Sleep blocks for d. When d is longer than one spinner interval and INFO
// messages are shown, it animates an INFO line with the named spinner and
// the remaining time, redrawn in place:
//
//	INFO: Sleeping.. / | 00:00:04,5
//
// An unknown spinner name is reported before anything is printed. Sleep
// returns ctx.Err() when ctx ends first.
func (c *Console) Sleep(ctx context.Context, d time.Duration, spinnerName string, interval time.Duration) error {
	if d <= 0 {
		return nil
	}
	sp, err := spinner.Get(spinnerName)
	if err != nil {
		return err
	}
	if interval <= 0 {
		interval = DefaultSpinnerInterval
	}

	if d <= interval || c.disableANSI || !level.Info.Enabled(c.threshold) {
		return c.wait(ctx, d)
	}

	for remaining, first := d, true; remaining > 0; first = false {
		step := min(remaining, interval)
		if !first {
			if err := c.ClearLastLine(); err != nil {
				return err
			}
		}
		if err := c.Info(fmt.Sprintf("Sleeping.. %s | %s", sp.Next(), FormatDuration(remaining))); err != nil {
			return err
		}
		if err := c.wait(ctx, step); err != nil {
			return err
		}
		remaining -= step
	}
	return nil
}

// FormatDuration formats d as HH:MM:SS,t with t in tenths of a second.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(100 * time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d,%d", h, m, s, d/(100*time.Millisecond))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
