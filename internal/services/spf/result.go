package spf

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// Result holds the parsed SPF policy for a single domain.
type Result struct {
	Input       string                `json:"input"`
	Status      services.RecordStatus `json:"status"`
	LookupCount int                   `json:"lookup_count"`
	Mechanism   string                `json:"mechanism,omitempty"`
	Raw         string                `json:"raw,omitempty"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// NotFound reports whether no SPF record exists for the domain.
func (r *Result) NotFound() bool {
	return r.Status == services.StatusMissing
}

// WriteText renders the result as a labeled block.
func (r *Result) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\tspf\tstatus=%s", r.Input, r.Status); err != nil {
		return err
	}
	if r.Status == services.StatusValid || r.Status == services.StatusWarning {
		if _, err := fmt.Fprintf(w, "\tlookups=%d", r.LookupCount); err != nil {
			return err
		}
		if r.Mechanism != "" {
			if _, err := fmt.Fprintf(w, "\tall=%s", r.Mechanism); err != nil {
				return err
			}
		}
	}
	if r.Raw != "" {
		if _, err := fmt.Fprintf(w, "\t%q", r.Raw); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// tableRow returns the row shared by single and batch tables.
func (r *Result) tableRow() []string {
	lookups, all := "-", "-"
	if r.Status == services.StatusValid || r.Status == services.StatusWarning {
		lookups = strconv.Itoa(r.LookupCount)
		if r.Mechanism != "" {
			all = r.Mechanism
		}
	}
	return []string{r.Input, string(r.Status), lookups, all, r.Raw}
}

// WriteTable renders the result as an ASCII table.
// Columns: Domain / Status / Lookups / All / Record.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 30, 46)
	table.Header([]string{"Domain", "Status", "Lookups", "All", "Record"})
	if err := table.Bulk([][]string{r.tableRow()}); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders the record text alone, or the status when absent.
func (r *Result) WritePlain(w io.Writer) error {
	if r.Raw == "" {
		_, err := fmt.Fprintln(w, r.Status)
		return err
	}
	_, err := fmt.Fprintln(w, r.Raw)
	return err
}
