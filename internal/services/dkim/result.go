package dkim

import (
	"fmt"
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// Result holds the reassembled DKIM key for a single domain and selector.
type Result struct {
	Input    string                `json:"input"`
	Selector string                `json:"selector"`
	Status   services.RecordStatus `json:"status"`
	KeyType  string                `json:"key_type,omitempty"`
	Raw      string                `json:"raw,omitempty"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// NotFound reports whether no key exists under the selector.
func (r *Result) NotFound() bool {
	return r.Status == services.StatusMissing
}

// WriteText renders the result as a labeled line.
func (r *Result) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\tdkim\tselector=%s\tstatus=%s", r.Input, r.Selector, r.Status); err != nil {
		return err
	}
	if r.KeyType != "" {
		if _, err := fmt.Fprintf(w, "\tk=%s", r.KeyType); err != nil {
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
	keyType := "-"
	if r.KeyType != "" {
		keyType = r.KeyType
	}
	return []string{r.Input, r.Selector, string(r.Status), keyType, r.Raw}
}

// WriteTable renders the result as an ASCII table. DKIM keys are long, so
// the record column wraps aggressively.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 40, 48)
	table.Header([]string{"Domain", "Selector", "Status", "Key Type", "Record"})
	if err := table.Bulk([][]string{r.tableRow()}); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders the reassembled key text alone, or the status when absent.
func (r *Result) WritePlain(w io.Writer) error {
	if r.Raw == "" {
		_, err := fmt.Fprintln(w, r.Status)
		return err
	}
	_, err := fmt.Fprintln(w, r.Raw)
	return err
}
