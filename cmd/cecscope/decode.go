package main

import (
	"fmt"

	"github.com/danmuck/cecscope/internal/capture"
	"github.com/danmuck/cecscope/internal/cec"
	"github.com/spf13/cobra"
)

func newDecodeCmd(out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>...",
		Short: "Decode frames given as hex arguments",
		Example: `  cecscope decode 4f:82:10:00
  cecscope decode 0x10 0x36
  cecscope -v decode "10 00 00 03"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, arg := range args {
				data, err := capture.ParseLine(arg)
				if err != nil {
					return fmt.Errorf("decode %q: %w", arg, err)
				}
				f, err := cec.Decode(data)
				if err != nil {
					return fmt.Errorf("decode %q: %w", arg, err)
				}
				if err := printFrame(w, f, capture.Frame{}, *out); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
