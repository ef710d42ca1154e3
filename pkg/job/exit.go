package job

import (
	"errors"

	"github.com/spencer-p/tidenotify/pkg/config"
	"github.com/spencer-p/tidenotify/pkg/fetch"
	"github.com/spencer-p/tidenotify/pkg/notify"
	"github.com/spencer-p/tidenotify/pkg/tides"
)

// Process exit statuses, one per failure class.
const (
	ExitOK = iota
	ExitOther
	ExitConfigMissing
	ExitFetch
	ExitStationNotFound
	ExitIncompleteData
	ExitNotification
)

type class struct {
	target error
	code   int
	result string
}

// classes is checked in order; the first match wins.
var classes = []class{
	{config.ErrConfigMissing, ExitConfigMissing, "config_missing"},
	{fetch.ErrTimeout, ExitFetch, "fetch_timeout"},
	{ErrFetch, ExitFetch, "fetch_failed"},
	{tides.ErrTableMissing, ExitFetch, "fetch_failed"},
	{tides.ErrStationNotFound, ExitStationNotFound, "station_not_found"},
	{tides.ErrIncompleteData, ExitIncompleteData, "incomplete_data"},
	{notify.ErrDelivery, ExitNotification, "notification_failed"},
}

// ExitCode maps err to the status the process should exit with.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, c := range classes {
		if errors.Is(err, c.target) {
			return c.code
		}
	}
	return ExitOther
}

// Result names err's failure class for metrics, "ok" for nil.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	for _, c := range classes {
		if errors.Is(err, c.target) {
			return c.result
		}
	}
	return "error"
}
