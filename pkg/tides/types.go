package tides

import (
	"errors"
	"fmt"
)

// TableSelector matches the tide rows on the prediction page. A page is
// considered rendered once at least one element matches.
const TableSelector = ".TideNow1_tbody tr"

const tbodyClass = "TideNow1_tbody"

var (
	// ErrTableMissing means the page had no tide table body at all.
	ErrTableMissing = errors.New("tide table not found")
	// ErrStationNotFound means no row's first cell matched the station.
	ErrStationNotFound = errors.New("station not found")
	// ErrIncompleteData means the station matched but its heights row or
	// some of its cells are missing.
	ErrIncompleteData = errors.New("incomplete tide data")
	// ErrMalformedRow is a kind of ErrIncompleteData for rows that are too
	// short.
	ErrMalformedRow = fmt.Errorf("%w: malformed row", ErrIncompleteData)
)

// Row is the trimmed text of each cell in one table row.
type Row []string

// Table is every row of the tide table in document order.
type Table []Row

// Info is one station's forecast, read from a prediction row and the heights
// row after it.
type Info struct {
	Station      string `json:"station"`
	Predicted    string `json:"predicted"`
	NextHighTime string `json:"next_high_time"`
	NextLowTime  string `json:"next_low_time"`
	HighHeight   string `json:"high_height"`
	LowHeight    string `json:"low_height"`
}

func (i Info) String() string {
	return fmt.Sprintf("{station: %s, predicted: %s, high: %s (%s), low: %s (%s)}",
		i.Station,
		i.Predicted,
		i.NextHighTime, i.HighHeight,
		i.NextLowTime, i.LowHeight)
}

// cell returns r[i], or ErrMalformedRow naming which part of the row was
// expected there.
func (r Row) cell(i int, what string) (string, error) {
	if i >= len(r) {
		return "", fmt.Errorf("%w: %s needs cell %d, row has %d: %q", ErrMalformedRow, what, i, len(r), []string(r))
	}
	return r[i], nil
}
