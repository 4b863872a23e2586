package posture

import (
	"fmt"
	"io"
	"strings"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/services/caa"
	"github.com/mailposture/mailposture/internal/services/dmarc"
	"github.com/mailposture/mailposture/internal/services/mx"
	"github.com/mailposture/mailposture/internal/services/reputation"
	"github.com/mailposture/mailposture/internal/services/spf"
)

// Section pairs one sub-audit's result with the error that stopped it,
// so a single failed lookup never voids the rest of the report.
type Section[T any] struct {
	Result *T     `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s Section[T]) failed() bool { return s.Error != "" }

// Result is the combined email-security posture of one domain.
type Result struct {
	Input      string                     `json:"input"`
	SPF        Section[spf.Result]        `json:"spf"`
	DMARC      Section[dmarc.Result]      `json:"dmarc"`
	CAA        Section[caa.Result]        `json:"caa"`
	MX         Section[mx.Result]         `json:"mx"`
	Reputation Section[reputation.Result] `json:"reputation"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// WriteText renders each section in a fixed order, substituting a
// failure line where a sub-audit errored.
func (r *Result) WriteText(w io.Writer) error {
	type section struct {
		name   string
		failed bool
		errMsg string
		write  func(io.Writer) error
	}
	sections := []section{
		{"spf", r.SPF.failed(), r.SPF.Error, writeOrSkip(r.SPF.Result)},
		{"dmarc", r.DMARC.failed(), r.DMARC.Error, writeOrSkip(r.DMARC.Result)},
		{"caa", r.CAA.failed(), r.CAA.Error, writeOrSkip(r.CAA.Result)},
		{"mx", r.MX.failed(), r.MX.Error, writeOrSkip(r.MX.Result)},
		{"reputation", r.Reputation.failed(), r.Reputation.Error, writeOrSkip(r.Reputation.Result)},
	}
	for _, s := range sections {
		if s.failed {
			if _, err := fmt.Fprintf(w, "%s\t%s\terror\t%s\n", r.Input, s.name, s.errMsg); err != nil {
				return err
			}
			continue
		}
		if err := s.write(w); err != nil {
			return err
		}
	}
	return nil
}

// tableRows returns one row per section, repeating the input so the
// hierarchical merge groups them under the domain.
func (r *Result) tableRows() [][]string {
	return [][]string{
		{r.Input, "spf", sectionCell(r.SPF, spfSummary)},
		{r.Input, "dmarc", sectionCell(r.DMARC, dmarcSummary)},
		{r.Input, "caa", sectionCell(r.CAA, caaSummary)},
		{r.Input, "mx", sectionCell(r.MX, mxSummary)},
		{r.Input, "reputation", sectionCell(r.Reputation, reputationSummary)},
	}
}

// WriteTable renders a one-line summary per section, grouped by domain.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewGroupedWrappingTable(w, 30, 48)
	table.Header([]string{"Domain", "Check", "Verdict"})
	if err := table.Bulk(r.tableRows()); err != nil {
		return err
	}
	return table.Render()
}

func sectionCell[T any](s Section[T], summarize func(*T) string) string {
	if s.failed() {
		return "error: " + s.Error
	}
	if s.Result == nil {
		return "-"
	}
	return summarize(s.Result)
}

func spfSummary(r *spf.Result) string {
	out := string(r.Status)
	if r.Status == services.StatusValid || r.Status == services.StatusWarning {
		out += fmt.Sprintf(", %d lookups", r.LookupCount)
		if r.Mechanism != "" {
			out += ", all=" + r.Mechanism
		}
	}
	return out
}

func dmarcSummary(r *dmarc.Result) string {
	out := string(r.Status)
	if r.Status == services.StatusValid {
		out += ", p=" + r.Policy
	}
	return out
}

func caaSummary(r *caa.Result) string {
	if r.Open {
		return "open"
	}
	return fmt.Sprintf("%d properties", len(r.Records))
}

func mxSummary(r *mx.Result) string {
	if r.NoMail {
		return "does not receive mail"
	}
	return fmt.Sprintf("%d exchangers", len(r.Records))
}

func reputationSummary(r *reputation.Result) string {
	if !r.Listed {
		return "clean"
	}
	names := make([]string, 0, len(r.Listings))
	for _, l := range r.Listings {
		names = append(names, l.Dataset)
	}
	return "listed: " + strings.Join(names, ", ") + " (risk " + string(r.Risk) + ")"
}

// WritePlain mirrors WriteText without the failure annotations.
func (r *Result) WritePlain(w io.Writer) error {
	for _, write := range []func(io.Writer) error{
		plainOrSkip(r.SPF.Result),
		plainOrSkip(r.DMARC.Result),
		plainOrSkip(r.CAA.Result),
		plainOrSkip(r.MX.Result),
		plainOrSkip(r.Reputation.Result),
	} {
		if err := write(w); err != nil {
			return err
		}
	}
	return nil
}

type textWriter interface {
	WriteText(io.Writer) error
	WritePlain(io.Writer) error
}

func writeOrSkip[T any, PT interface {
	*T
	textWriter
}](result PT) func(io.Writer) error {
	return func(w io.Writer) error {
		if result == nil {
			return nil
		}
		return result.WriteText(w)
	}
}

func plainOrSkip[T any, PT interface {
	*T
	textWriter
}](result PT) func(io.Writer) error {
	return func(w io.Writer) error {
		if result == nil {
			return nil
		}
		return result.WritePlain(w)
	}
}

// MultiResult holds posture reports for multiple inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteTable renders all section summaries in one table grouped by domain.
func (m *MultiResult) WriteTable(w io.Writer) error {
	table := output.NewGroupedWrappingTable(w, 30, 48)
	table.Header([]string{"Domain", "Check", "Verdict"})
	var rows [][]string
	for _, r := range m.Results {
		rows = append(rows, r.tableRows()...)
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
