package reputation

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mailposture/mailposture/internal/output"
)

// Result holds the blocklist verdict for a single target.
type Result struct {
	Input string `json:"input"`
	Zone  Zone   `json:"zone"`
	Classification
	ReleaseDate *time.Time `json:"release_date,omitempty"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// WriteText renders one labeled line per decoded listing, or the clean
// verdict.
func (r *Result) WriteText(w io.Writer) error {
	if !r.Listed {
		_, err := fmt.Fprintf(w, "%s\t%s\tclean\n", r.Input, r.Zone)
		return err
	}
	for _, l := range r.Listings {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\trisk=%s\n", r.Input, r.Zone, l.Dataset, l.Code, l.Reason, r.Risk); err != nil {
			return err
		}
	}
	if r.ReleaseDate != nil {
		if _, err := fmt.Fprintf(w, "%s\t%s\trelease\t%s\n", r.Input, r.Zone, r.ReleaseDate.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

// tableRows returns one row per decoded listing, repeating the input so the
// hierarchical merge groups them under the target.
func (r *Result) tableRows() [][]string {
	if !r.Listed {
		return [][]string{{r.Input, string(r.Zone), "-", "-", string(r.Risk)}}
	}
	rows := make([][]string, 0, len(r.Listings)+1)
	for _, l := range r.Listings {
		rows = append(rows, []string{r.Input, string(r.Zone), l.Dataset + " (" + strconv.Itoa(l.Code) + ")", l.Reason, string(r.Risk)})
	}
	if r.ReleaseDate != nil {
		rows = append(rows, []string{r.Input, string(r.Zone), "release", r.ReleaseDate.Format(time.RFC3339), string(r.Risk)})
	}
	return rows
}

// WriteTable renders the listings grouped by target.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewGroupedWrappingTable(w, 30, 50)
	table.Header([]string{"Target", "Zone", "Dataset", "Reason", "Risk"})
	if err := table.Bulk(r.tableRows()); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders the dataset names only, one per line.
func (r *Result) WritePlain(w io.Writer) error {
	for _, l := range r.Listings {
		if _, err := fmt.Fprintln(w, l.Dataset); err != nil {
			return err
		}
	}
	return nil
}
