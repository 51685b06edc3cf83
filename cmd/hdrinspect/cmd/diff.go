package cmd

import (
	"fmt"
	"io"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailhdr/header"
)

func newDiffCommand(s *settings) *cobra.Command {
	var delta bool

	cmd := &cobra.Command{
		Use:   "diff file",
		Short: "Show fields whose structured decoding differs from the plain text",
		Long: `Show every header field whose structured decoding differs from the same
field decoded as unstructured text. Text only in the unstructured form is
shown as deleted and text only in the structured form as inserted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.eachHeader(cmd, args[0], func(n int, h *header.Header) error {
				return diff(cmd.OutOrStdout(), n, h, delta)
			})
		},
	}

	cmd.Flags().BoolVar(&delta, "delta", false, "print the compact diff delta instead of colored text")

	return cmd
}

func diff(w io.Writer, msg int, h *header.Header, delta bool) error {
	dmp := diffmatchpatch.New()

	for n, f := range h.ListFields() {
		i, err := h.InstanceAt(n)
		if err != nil {
			return fmt.Errorf("message %d: %w", msg, err)
		}

		plain, structured := i.AsUnstructured().Decoded(), i.Decoded()
		if plain == structured {
			continue
		}

		diffs := dmp.DiffMain(plain, structured, false)
		if delta {
			_, _ = fmt.Fprintf(w, "%d: %s: %s\n", msg, f.Name(), dmp.DiffToDelta(diffs))
			continue
		}
		_, _ = fmt.Fprintf(w, "%d: %s: %s\n", msg, f.Name(), dmp.DiffPrettyText(diffs))
	}

	return nil
}
