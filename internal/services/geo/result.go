package geo

import (
	"fmt"
	"io"
	"strings"

	"github.com/mailposture/mailposture/internal/output"
)

// Result holds the location and network owner of a single IP address.
type Result struct {
	Input   string `json:"input"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
	Org     string `json:"org,omitempty"`
	ASN     string `json:"asn,omitempty"`
	// Source records where the answer came from: "mmdb" for a local
	// database, "api" for the HTTP provider.
	Source string `json:"source"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// Location joins the non-empty place fields.
func (r *Result) Location() string {
	var parts []string
	for _, p := range []string{r.City, r.Region, r.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// WriteText renders a labeled line per result.
func (r *Result) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\tgeo\t%s\t%s\t%s\n", r.Input, r.Location(), r.Org, r.ASN)
	return err
}

// tableRow returns the row shared by single and batch tables.
func (r *Result) tableRow() []string {
	return []string{r.Input, r.Location(), r.Org, r.ASN, r.Source}
}

// WriteTable renders the result as an ASCII table.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 30, 42)
	table.Header([]string{"Address", "Location", "Org", "ASN", "Source"})
	if err := table.Bulk([][]string{r.tableRow()}); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders only the location.
func (r *Result) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Location())
	return err
}
