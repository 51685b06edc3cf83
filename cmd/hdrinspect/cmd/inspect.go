package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailhdr/header"
)

func newInspectCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect file",
		Short: "Show the kind, decoded value, and defects of every header field",
		Long: `Show how every header field is parsed. For each field this prints the
kind the registry picks, the structured decoding, every defect found, and the
field decoded as plain unstructured text. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.eachHeader(cmd, args[0], func(n int, h *header.Header) error {
				return inspect(cmd.OutOrStdout(), n, h)
			})
		},
	}
}

func inspect(w io.Writer, msg int, h *header.Header) error {
	_, _ = fmt.Fprintf(w, "message %d:\n", msg)

	var failed int
	for n, f := range h.ListFields() {
		i, err := h.InstanceAt(n)
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(w, "%s\n  error: %v\n", f.Name(), err)
			continue
		}

		_, _ = fmt.Fprintf(w, "%s [%s] %T\n", f.Name(), i.Kind().Name(), i.Tree())
		_, _ = fmt.Fprintf(w, "  decoded: %s\n", i.Decoded())
		for _, d := range i.Defects() {
			_, _ = fmt.Fprintf(w, "  defect: %s\n", d)
		}

		u := i.AsUnstructured()
		_, _ = fmt.Fprintf(w, "  unstructured: %s\n", u.Decoded())
		for _, d := range u.Defects() {
			_, _ = fmt.Fprintf(w, "  unstructured defect: %s\n", d)
		}
	}

	if err := h.Validate(); err != nil {
		_, _ = fmt.Fprintf(w, "invalid: %v\n", err)
	}

	if failed > 0 {
		return fmt.Errorf("message %d: %d header field(s) could not be parsed", msg, failed)
	}
	return nil
}
