// Package cli provides the Cobra command tree and output wiring for
// mailposture.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mailposture/mailposture/internal/input"
	"github.com/mailposture/mailposture/internal/output"
)

// newRootCmd builds the top-level Cobra command.
// Callers must set stdout/stderr via cmd.SetOut / cmd.SetErr before Execute.
func newRootCmd() *cobra.Command {
	// d is populated by PersistentPreRunE before any subcommand's RunE runs.
	// INVARIANT: Cobra only executes the innermost PersistentPreRunE in the
	// command chain. If a future subcommand defines its own PersistentPreRunE,
	// the root hook will NOT run and d will be zero-valued. Do not add
	// PersistentPreRunE to any subcommand without also re-calling buildDeps.
	var d deps

	cmd := &cobra.Command{
		Use:   "mailposture",
		Short: "mailposture — email security posture and blocklist audit tool",
		Long: `Mailposture audits the email security posture of domains and IP addresses:
SPF, DMARC, DKIM, CAA and MX policy records, reverse DNS, registration data and
Spamhaus blocklist reputation.

Blocklist lookups require a Spamhaus DQS key (config api_keys.spamhaus_dqs or
--dqs-key). Everything else is keyless.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := buildDeps(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d = *resolved
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "path to the config file")
	pf.StringP("output", "o", "", "output format: table, text, json, plain")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("doh-url", "", "DNS-over-HTTPS resolver base URL")
	pf.Duration("timeout", 0, "per-request timeout (0 uses the config value)")
	pf.String("proxy", "", "proxy URL (http, https or socks5)")
	pf.String("dqs-key", "", "Spamhaus DQS key for reputation lookups")
	pf.String("geoip-db", "", "path to a local MaxMind City database")

	cmd.Version = version
	cmd.SetVersionTemplate("mailposture version {{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: "audit", Title: "Audit Commands:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	cmd.AddCommand(
		newSPFCmd(&d),
		newDMARCCmd(&d),
		newDKIMCmd(&d),
		newCAACmd(&d),
		newMXCmd(&d),
		newPTRCmd(&d),
		newReputationCmd(&d),
		newPostureCmd(&d),
		newRDAPCmd(&d),
		newGeoCmd(&d),
		newSubjectCmd(),
		newServicesCmd(),
		newCompletionCmd(),
		newVersionCmd(&d),
	)

	return cmd
}

// Run builds the root command and executes it with the given arguments
// (without the program name) and streams.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// resolveInputs returns positional args, or reads non-empty lines from stdin
// when no args are provided. Returns an error if stdin is an interactive
// terminal with no args (i.e. the user forgot to pass an argument or pipe
// input).
func resolveInputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	r := cmd.InOrStdin()
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // uintptr→int is safe for file descriptors; they fit in int on all supported platforms
		return nil, fmt.Errorf("no input: pass an argument or pipe stdin")
	}
	return input.Read(r)
}

// writeResult formats and writes a service result to stdout.
func writeResult(stdout io.Writer, d *deps, result any) error {
	if err := output.Write(stdout, d.format, result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
