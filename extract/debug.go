package extract

import (
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"ldx/utils/debug"
)

// String returns a readable tree of parse results. It exists solely for
// manual inspection during debugging and for debug reports.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Document %s", d.ID)
	tw.TextBlock(1, "Source", d.Source)
	tw.Line(1, "Dialect[%s] kind[%s] confidence[%s] encoding[%s]", d.Dialect, d.Result.Kind, d.Result.Confidence, d.Encoding)
	if len(d.Meta.Title) > 0 || len(d.Meta.Author) > 0 {
		tw.TextBlock(1, "Title", d.Meta.Title)
		tw.TextBlock(1, "Author", d.Meta.Author)
	}

	tw.Line(1, "Zones: %d", len(d.Zones))
	names := make([]string, 0, len(d.Zones))
	for _, k := range d.Zones {
		names = append(names, k.String())
	}
	sort.Sort(natural.StringSlice(names))
	for _, n := range names {
		tw.Line(2, "%s", n)
	}
	if len(d.Unclaimed) > 0 {
		tw.Line(1, "Unclaimed zones: %d", len(d.Unclaimed))
		for _, k := range d.Unclaimed {
			tw.Line(2, "%s", k)
		}
	}

	tw.Line(1, "Page spans: %d", len(d.Pages))
	for i, p := range d.Pages {
		tw.Line(2, "Span[%d] pages[%d] size[%.1fx%.1f] header[%t] footer[%t]",
			i, p.Span, p.Geometry.Width, p.Geometry.Height, p.Header != nil, p.Footer != nil)
	}
	tw.Line(1, "Page marks[%d] pictures[%d] notes[%d]", d.PageMarks, d.Pictures, d.Notes)

	if errs := multierr.Errors(d.Recovered); len(errs) > 0 {
		tw.Line(1, "Recovered problems: %d", len(errs))
		for _, err := range errs {
			tw.Line(2, "%v", err)
		}
	}
	return tw.String()
}
