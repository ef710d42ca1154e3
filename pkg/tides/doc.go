// Package tides extracts a single station's forecast from the tide prediction
// table published by the Port of London Authority. The page lists stations as
// pairs of adjacent rows: a prediction row (station, predicted state, next high
// time, next low time) followed by a heights row (high height, low height).
//
// That pairing is an assumption about the page layout rather than something
// the page guarantees; Extract treats whatever row follows a matched station
// as its heights row.
package tides
