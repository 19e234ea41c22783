package main

import (
	"github.com/danmuck/cecscope/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var out outputOptions
	root := &cobra.Command{
		Use:           "cecscope",
		Short:         "Decode HDMI CEC frames",
		Long:          "cecscope decodes HDMI-CEC frames from the command line, capture files, a serial sniffer or an HTTP service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.ConfigureRuntime()
		},
	}
	root.PersistentFlags().BoolVar(&out.JSON, "json", false, "Print decoded frames as JSON, one object per line")
	root.PersistentFlags().BoolVarP(&out.Verbose, "verbose", "v", false, "Print every field and diagnostic under each frame")

	root.AddCommand(
		newDecodeCmd(&out),
		newReadCmd(&out),
		newServeCmd(),
	)
	return root
}
