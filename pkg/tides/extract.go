package tides

import (
	"fmt"
	"strings"
)

// Extract finds station in rows and reads its forecast. The first row whose
// first cell matches station (see SameStation) is the prediction row and the
// row directly after it is the heights row. Later rows are never examined.
func Extract(rows Table, station string) (Info, error) {
	var pair []Row
	for _, row := range rows {
		if len(pair) == 1 {
			pair = append(pair, row)
			break
		}
		if len(row) > 0 && SameStation(row[0], station) {
			pair = append(pair, row)
		}
	}

	switch len(pair) {
	case 0:
		return Info{}, fmt.Errorf("%w: %q", ErrStationNotFound, station)
	case 1:
		return Info{}, fmt.Errorf("%w: %q is the last row, no heights row follows", ErrIncompleteData, station)
	}
	return fromPair(pair[0], pair[1])
}

func fromPair(pred, heights Row) (Info, error) {
	var (
		info Info
		err  error
	)
	// Stop at the first short cell so nothing partial escapes.
	read := func(dst *string, r Row, i int, what string) {
		if err != nil {
			return
		}
		*dst, err = r.cell(i, what)
	}
	read(&info.Station, pred, 0, "station")
	read(&info.Predicted, pred, 1, "predicted state")
	read(&info.NextHighTime, pred, 2, "next high time")
	read(&info.NextLowTime, pred, 3, "next low time")
	read(&info.HighHeight, heights, 0, "high height")
	read(&info.LowHeight, heights, 1, "low height")
	if err != nil {
		return Info{}, err
	}
	return info, nil
}

// SameStation reports whether two station names are equal ignoring case,
// surrounding whitespace, and the width of inner whitespace.
func SameStation(a, b string) bool {
	return strings.EqualFold(normalize(a), normalize(b))
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
