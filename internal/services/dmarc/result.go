package dmarc

import (
	"fmt"
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// Result holds the parsed DMARC policy for a single domain.
type Result struct {
	Input  string                `json:"input"`
	Status services.RecordStatus `json:"status"`
	Policy string                `json:"policy,omitempty"`
	ADKIM  string                `json:"adkim,omitempty"`
	ASPF   string                `json:"aspf,omitempty"`
	Raw    string                `json:"raw,omitempty"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// NotFound reports whether no DMARC record exists for the domain.
func (r *Result) NotFound() bool {
	return r.Status == services.StatusMissing
}

// WriteText renders the result as a labeled line.
func (r *Result) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\tdmarc\tstatus=%s", r.Input, r.Status); err != nil {
		return err
	}
	if r.Status == services.StatusValid {
		if _, err := fmt.Fprintf(w, "\tp=%s\tadkim=%s\taspf=%s", r.Policy, r.ADKIM, r.ASPF); err != nil {
			return err
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
	policy, adkim, aspf := "-", "-", "-"
	if r.Status == services.StatusValid {
		policy, adkim, aspf = r.Policy, r.ADKIM, r.ASPF
	}
	return []string{r.Input, string(r.Status), policy, adkim, aspf, r.Raw}
}

// WriteTable renders the result as an ASCII table.
// Columns: Domain / Status / Policy / ADKIM / ASPF / Record.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 30, 52)
	table.Header([]string{"Domain", "Status", "Policy", "ADKIM", "ASPF", "Record"})
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
