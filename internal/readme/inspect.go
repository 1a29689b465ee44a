package readme

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	goerrors "github.com/goliatone/go-errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Shape is what a Markdown renderer sees in a table section.
type Shape struct {
	Tables  int      `json:"tables"`
	Headers []string `json:"headers"`
	Rows    int      `json:"rows"`
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Inspect renders section as GitHub-flavored Markdown and reports the shape
// of the first table in it.
func Inspect(section string) (Shape, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(section), &buf); err != nil {
		return Shape{}, fmt.Errorf("render section: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return Shape{}, fmt.Errorf("parse rendered section: %w", err)
	}

	tables := doc.Find("table")
	shape := Shape{Tables: tables.Length()}
	if shape.Tables == 0 {
		return shape, nil
	}
	first := tables.First()
	first.Find("thead th").Each(func(_ int, s *goquery.Selection) {
		shape.Headers = append(shape.Headers, s.Text())
	})
	shape.Rows = first.Find("tbody tr").Length()
	return shape, nil
}

// Verify checks that section renders as exactly one table with the given
// headers and number of rows. GFM pads or drops surplus cells, so a broken
// cell shows up as a missing table or an extra row.
func Verify(section string, headers []string, rows int) error {
	shape, err := Inspect(section)
	if err != nil {
		return err
	}
	var problem error
	switch {
	case shape.Tables != 1:
		problem = fmt.Errorf("expected 1 table, found %d", shape.Tables)
	case len(shape.Headers) != len(headers):
		problem = fmt.Errorf("expected %d columns, found %d", len(headers), len(shape.Headers))
	case shape.Rows != rows:
		problem = fmt.Errorf("expected %d rows, found %d", rows, shape.Rows)
	default:
		for i, h := range headers {
			if shape.Headers[i] != h {
				problem = fmt.Errorf("column %d is %q, expected %q", i+1, shape.Headers[i], h)
				break
			}
		}
	}
	if problem != nil {
		return goerrors.Wrap(problem, goerrors.CategoryCommand, "malformed table").
			WithTextCode(codeTableMalformed)
	}
	return nil
}
