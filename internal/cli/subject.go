package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mailposture/mailposture/internal/mime"
)

func newSubjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Short:   "Encode or decode RFC 2047 email subject lines",
		GroupID: "utility",
	}
	cmd.AddCommand(newSubjectEncodeCmd(), newSubjectDecodeCmd())
	return cmd
}

func newSubjectEncodeCmd() *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "encode <subject>...",
		Short: "Encode a subject line as UTF-8 encoded-words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded, err := mime.EncodeSubject(strings.Join(args, " "), mime.Encoding(encoding))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}
	cmd.Flags().StringVarP(&encoding, "encoding", "e", string(mime.EncodingQ), "encoded-word form: q or b")
	return cmd
}

func newSubjectDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <header>...",
		Short: "Decode RFC 2047 encoded-words in a header value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := mime.DecodeSubject(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), decoded)
			return nil
		},
	}
}
