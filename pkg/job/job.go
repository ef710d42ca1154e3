// Package job runs one fetch-parse-notify cycle.
package job

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spencer-p/tidenotify/pkg/config"
	"github.com/spencer-p/tidenotify/pkg/fetch"
	"github.com/spencer-p/tidenotify/pkg/metrics"
	"github.com/spencer-p/tidenotify/pkg/notify"
	"github.com/spencer-p/tidenotify/pkg/report"
	"github.com/spencer-p/tidenotify/pkg/sunset"
	"github.com/spencer-p/tidenotify/pkg/tides"
)

// ErrFetch wraps every failure to retrieve the tide page.
var ErrFetch = errors.New("failed to fetch tide page")

// Job holds everything one run needs. Nothing in it outlives the run.
type Job struct {
	Config   *config.Config
	Fetcher  fetch.Fetcher
	Notifier notify.Notifier
	Log      *zap.SugaredLogger
	// DryRun formats the message but does not send it.
	DryRun bool
	// Now is the clock used for sun events; time.Now when nil.
	Now func() time.Time
}

// New wires the fetcher and notifier named by cfg.
func New(cfg *config.Config, log *zap.SugaredLogger) *Job {
	return &Job{
		Config:   cfg,
		Fetcher:  NewFetcher(cfg, log),
		Notifier: notify.NewPushbullet(cfg.NotificationToken, cfg.PushbulletURL, nil),
		Log:      log,
	}
}

// NewFetcher returns the fetcher cfg.Fetcher names, waiting for the tide
// table rows.
func NewFetcher(cfg *config.Config, log *zap.SugaredLogger) fetch.Fetcher {
	if cfg.Fetcher == "static" {
		return &fetch.Static{
			Selector: tides.TableSelector,
			Timeout:  cfg.RenderTimeout,
			DebugDir: cfg.DebugDir,
			Client:   &http.Client{},
			Log:      log,
		}
	}
	return &fetch.Chrome{
		Selector: tides.TableSelector,
		Timeout:  cfg.RenderTimeout,
		CI:       cfg.CIBrowser,
		DebugDir: cfg.DebugDir,
		Log:      log,
	}
}

func (j *Job) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// Rows fetches the page and returns its tide table.
func (j *Job) Rows(ctx context.Context) (tides.Table, error) {
	page, err := j.Fetcher.Fetch(ctx, j.Config.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	rows, err := tides.ParseTableString(page)
	if err != nil {
		return nil, err
	}
	j.Log.Debugw("Parsed tide table", "rows", len(rows))
	return rows, nil
}

// Run performs one cycle and returns the message it sent. Any error aborts
// the run before a notification goes out.
func (j *Job) Run(ctx context.Context) (msg report.Message, err error) {
	start := time.Now()
	defer func() {
		j.record(start, err)
	}()

	rows, err := j.Rows(ctx)
	if err != nil {
		return report.Message{}, err
	}

	info, err := tides.Extract(rows, j.Config.StationName)
	if err != nil {
		return report.Message{}, err
	}
	j.Log.Infow("Found station", "info", info.String())

	r := report.Report{Info: info}
	if j.Config.HasCoordinates() {
		place, err := sunset.NewPlace(*j.Config.Latitude, *j.Config.Longitude, j.Config.TimeZone)
		if err != nil {
			j.Log.Warnw("Skipping sun events", "error", err)
		} else {
			r.SunEvents = sunset.GetSunEvents(j.now(), place)
		}
	}
	msg = report.Format(r)

	if j.DryRun {
		j.Log.Infow("Dry run, not sending", "title", msg.Title, "body", msg.Body)
		return msg, nil
	}
	if err := j.Notifier.Send(ctx, msg.Title, msg.Body); err != nil {
		return report.Message{}, err
	}
	j.Log.Infow("Sent notification", "title", msg.Title)
	return msg, nil
}

// record observes the run and pushes metrics when a Pushgateway is
// configured. Push failures never fail the run.
func (j *Job) record(start time.Time, err error) {
	metrics.ObserveRun(Result(err), start, time.Now())
	if j.Config.PushgatewayURL == "" {
		return
	}
	if perr := metrics.Push(j.Config.PushgatewayURL, j.Config.StationName); perr != nil {
		j.Log.Warnw("Failed to push metrics", "error", perr)
	}
}
