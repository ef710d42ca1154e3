package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/spencer-p/tidenotify/pkg/config"
	"github.com/spencer-p/tidenotify/pkg/fetch"
	"github.com/spencer-p/tidenotify/pkg/notify"
	"github.com/spencer-p/tidenotify/pkg/report"
	"github.com/spencer-p/tidenotify/pkg/tides"
)

type fakeFetcher struct {
	page string
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.page, f.err
}

type sent struct{ title, body string }

type fakeNotifier struct {
	sent []sent
	err  error
}

func (n *fakeNotifier) Send(ctx context.Context, title, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sent{title, body})
	return nil
}

// page renders rows as a tide table the way the prediction site lays it out.
func page(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table><tbody class="TideNow1_tbody">`)
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", cell)
		}
		b.WriteString("</tr>")
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

var scenarioPage = page(
	[]string{"Other", "x", "1:00", "2:00"},
	[]string{"London Bridge", "rising", "3:15", "9:40"},
	[]string{"2.1m", "0.4m"},
)

func newJob(station string, f fetch.Fetcher, n notify.Notifier) *Job {
	return &Job{
		Config: &config.Config{
			NotificationToken: "o.secret",
			StationName:       station,
			URL:               "http://tides.example/",
			TimeZone:          "Europe/London",
		},
		Fetcher:  f,
		Notifier: n,
		Log:      zap.NewNop().Sugar(),
	}
}

func TestRunSendsNotification(t *testing.T) {
	n := &fakeNotifier{}
	j := newJob("London Bridge", &fakeFetcher{page: scenarioPage}, n)

	msg, err := j.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := report.Format(report.Report{Info: tides.Info{
		Station:      "London Bridge",
		Predicted:    "rising",
		NextHighTime: "3:15",
		NextLowTime:  "9:40",
		HighHeight:   "2.1m",
		LowHeight:    "0.4m",
	}})
	if diff := cmp.Diff(want, msg); diff != "" {
		t.Errorf("wrong message (-want,+got):\n%s", diff)
	}
	if diff := cmp.Diff([]sent{{want.Title, want.Body}}, n.sent, cmp.AllowUnexported(sent{})); diff != "" {
		t.Errorf("wrong sends (-want,+got):\n%s", diff)
	}
}

func TestRunFailures(t *testing.T) {
	table := []struct {
		name     string
		station  string
		fetcher  *fakeFetcher
		notifier *fakeNotifier
		wantErr  error
		wantCode int
	}{{
		name:     "station not found",
		station:  "Southend",
		fetcher:  &fakeFetcher{page: scenarioPage},
		notifier: &fakeNotifier{},
		wantErr:  tides.ErrStationNotFound,
		wantCode: ExitStationNotFound,
	}, {
		name:     "no heights row",
		station:  "London Bridge",
		fetcher:  &fakeFetcher{page: page([]string{"London Bridge", "rising", "3:15", "9:40"})},
		notifier: &fakeNotifier{},
		wantErr:  tides.ErrIncompleteData,
		wantCode: ExitIncompleteData,
	}, {
		name:    "short row",
		station: "London Bridge",
		fetcher: &fakeFetcher{page: page(
			[]string{"London Bridge", "rising"},
			[]string{"2.1m", "0.4m"},
		)},
		notifier: &fakeNotifier{},
		wantErr:  tides.ErrMalformedRow,
		wantCode: ExitIncompleteData,
	}, {
		name:     "render timeout",
		station:  "London Bridge",
		fetcher:  &fakeFetcher{err: fmt.Errorf("%w: after 30s", fetch.ErrTimeout)},
		notifier: &fakeNotifier{},
		wantErr:  fetch.ErrTimeout,
		wantCode: ExitFetch,
	}, {
		name:     "browser failure",
		station:  "London Bridge",
		fetcher:  &fakeFetcher{err: errors.New("chrome not found")},
		notifier: &fakeNotifier{},
		wantErr:  ErrFetch,
		wantCode: ExitFetch,
	}, {
		name:     "no table",
		station:  "London Bridge",
		fetcher:  &fakeFetcher{page: "<html><body>maintenance</body></html>"},
		notifier: &fakeNotifier{},
		wantErr:  tides.ErrTableMissing,
		wantCode: ExitFetch,
	}, {
		name:     "delivery failure",
		station:  "London Bridge",
		fetcher:  &fakeFetcher{page: scenarioPage},
		notifier: &fakeNotifier{err: fmt.Errorf("%w: 401 Unauthorized", notify.ErrDelivery)},
		wantErr:  notify.ErrDelivery,
		wantCode: ExitNotification,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			j := newJob(tc.station, tc.fetcher, tc.notifier)
			msg, err := j.Run(context.Background())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, wanted %v", err, tc.wantErr)
			}
			if code := ExitCode(err); code != tc.wantCode {
				t.Errorf("got exit code %d, wanted %d", code, tc.wantCode)
			}
			if len(tc.notifier.sent) != 0 {
				t.Errorf("notification sent despite failure: %v", tc.notifier.sent)
			}
			if diff := cmp.Diff(report.Message{}, msg); diff != "" {
				t.Errorf("message returned with error (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestRunDryRun(t *testing.T) {
	n := &fakeNotifier{}
	j := newJob("london bridge", &fakeFetcher{page: scenarioPage}, n)
	j.DryRun = true

	msg, err := j.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Title != "Tide Times - London Bridge" {
		t.Errorf("got title %q", msg.Title)
	}
	if len(n.sent) != 0 {
		t.Errorf("dry run sent %v", n.sent)
	}
}

func TestRunWithSunEvents(t *testing.T) {
	lat, long := 51.5079, -0.0877
	n := &fakeNotifier{}
	j := newJob("London Bridge", &fakeFetcher{page: scenarioPage}, n)
	j.Config.Latitude, j.Config.Longitude = &lat, &long
	j.Now = func() time.Time { return time.Date(2020, time.October, 20, 12, 0, 0, 0, time.UTC) }

	msg, err := j.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Body, "\nSunrise: ") || !strings.Contains(msg.Body, "\nSunset: ") {
		t.Errorf("sun events missing from body:\n%s", msg.Body)
	}
}

func TestRows(t *testing.T) {
	j := newJob("London Bridge", &fakeFetcher{page: scenarioPage}, &fakeNotifier{})
	rows, err := j.Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, wanted 3", len(rows))
	}
}

func TestExitCode(t *testing.T) {
	table := []struct {
		err        error
		wantCode   int
		wantResult string
	}{
		{nil, ExitOK, "ok"},
		{fmt.Errorf("%w: STATION_NAME not set", config.ErrConfigMissing), ExitConfigMissing, "config_missing"},
		{fmt.Errorf("%w: %w", ErrFetch, fetch.ErrTimeout), ExitFetch, "fetch_timeout"},
		{fmt.Errorf("%w: %w", ErrFetch, fetch.ErrNoMatch), ExitFetch, "fetch_failed"},
		{tides.ErrStationNotFound, ExitStationNotFound, "station_not_found"},
		{tides.ErrMalformedRow, ExitIncompleteData, "incomplete_data"},
		{notify.ErrDelivery, ExitNotification, "notification_failed"},
		{errors.New("boom"), ExitOther, "error"},
	}
	for _, tc := range table {
		if got := ExitCode(tc.err); got != tc.wantCode {
			t.Errorf("ExitCode(%v) = %d, wanted %d", tc.err, got, tc.wantCode)
		}
		if got := Result(tc.err); got != tc.wantResult {
			t.Errorf("Result(%v) = %q, wanted %q", tc.err, got, tc.wantResult)
		}
	}
}
