package ptr

import (
	"fmt"
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// Result holds the reverse-DNS name for a single IP address.
type Result struct {
	Input    string                `json:"input"`
	Status   services.RecordStatus `json:"status"`
	Hostname string                `json:"hostname,omitempty"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// NotFound reports whether the address has no reverse mapping.
func (r *Result) NotFound() bool {
	return r.Status == services.StatusMissing
}

// WriteText renders a labeled line per result.
func (r *Result) WriteText(w io.Writer) error {
	if r.NotFound() {
		_, err := fmt.Fprintf(w, "%s\tptr\tmissing\n", r.Input)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\tptr\t%s\n", r.Input, r.Hostname)
	return err
}

// tableRow returns the row shared by single and batch tables.
func (r *Result) tableRow() []string {
	hostname := "-"
	if r.Hostname != "" {
		hostname = r.Hostname
	}
	return []string{r.Input, string(r.Status), hostname}
}

// WriteTable renders the result as an ASCII table.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 30, 24)
	table.Header([]string{"Address", "Status", "Hostname"})
	if err := table.Bulk([][]string{r.tableRow()}); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders only the hostname, one per line.
func (r *Result) WritePlain(w io.Writer) error {
	if r.NotFound() {
		return nil
	}
	_, err := fmt.Fprintln(w, r.Hostname)
	return err
}
