package rdap

import (
	"fmt"
	"io"
	"time"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// Result holds the registration data for a single domain.
type Result struct {
	Input      string                `json:"input"`
	Status     services.RecordStatus `json:"status"`
	Registrar  string                `json:"registrar,omitempty"`
	Registered *time.Time            `json:"registered,omitempty"`
	Expires    *time.Time            `json:"expires,omitempty"`
	DomainAge  string                `json:"domain_age,omitempty"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// NotFound reports whether the registry has no record of the domain.
func (r *Result) NotFound() bool {
	return r.Status == services.StatusMissing
}

// WriteText renders the known registration facts, one labeled line each.
func (r *Result) WriteText(w io.Writer) error {
	if r.NotFound() {
		_, err := fmt.Fprintf(w, "%s\trdap\tunregistered\n", r.Input)
		return err
	}
	if r.Registrar != "" {
		if _, err := fmt.Fprintf(w, "%s\trdap\tregistrar\t%s\n", r.Input, r.Registrar); err != nil {
			return err
		}
	}
	if r.Registered != nil {
		if _, err := fmt.Fprintf(w, "%s\trdap\tregistered\t%s\t%s\n", r.Input, r.Registered.Format(time.RFC3339), r.DomainAge); err != nil {
			return err
		}
	}
	if r.Expires != nil {
		if _, err := fmt.Fprintf(w, "%s\trdap\texpires\t%s\n", r.Input, r.Expires.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

// tableRow returns the row shared by single and batch tables.
func (r *Result) tableRow() []string {
	registrar, registered, age, expires := "-", "-", "-", "-"
	if r.NotFound() {
		registrar = "unregistered"
	}
	if r.Registrar != "" {
		registrar = r.Registrar
	}
	if r.Registered != nil {
		registered = r.Registered.Format("2006-01-02")
	}
	if r.DomainAge != "" {
		age = r.DomainAge
	}
	if r.Expires != nil {
		expires = r.Expires.Format("2006-01-02")
	}
	return []string{r.Input, registrar, registered, age, expires}
}

// WriteTable renders the result as an ASCII table.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 30, 52)
	table.Header([]string{"Domain", "Registrar", "Registered", "Age", "Expires"})
	if err := table.Bulk([][]string{r.tableRow()}); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders only the registrar name.
func (r *Result) WritePlain(w io.Writer) error {
	if r.Registrar == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, r.Registrar)
	return err
}
