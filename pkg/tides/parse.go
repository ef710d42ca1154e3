package tides

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseTable reads the rows of the tide table out of a rendered page. Rows
// outside the tide table body are ignored. Both td and th cells count, in
// document order, and each cell's text is trimmed.
func ParseTable(r io.Reader) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	tbody := doc.Find("tbody." + tbodyClass).First()
	if tbody.Length() == 0 {
		return nil, ErrTableMissing
	}

	var table Table
	tbody.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		row := Row{}
		tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		table = append(table, row)
	})
	return table, nil
}

// ParseTableString is ParseTable for markup already held in memory.
func ParseTableString(page string) (Table, error) {
	return ParseTable(strings.NewReader(page))
}
