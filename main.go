// Command reelcheck reviews versions of a clip frame by frame.
package main

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reelcheck/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "reelcheck [flags] [source...]",
	Short: "Frame-accurate review of clip versions",
	Long: "reelcheck plays versions of the same clip and switches between them\n" +
		"without losing the frame you are looking at.\n\n" +
		"Sources given on the command line are reviewed in order; without them the\n" +
		"sources from the config file are used and the last session is restored.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := Flags{
			ConfigPath: lo.Must(cmd.Flags().GetString("config")),
			Sources:    args,
		}
		if cmd.Flags().Changed("engine") {
			flags.Engine = lo.Must(cmd.Flags().GetString("engine"))
		}
		if cmd.Flags().Changed("frame-rate") {
			flags.FrameRate = lo.Must(cmd.Flags().GetFloat64("frame-rate"))
		}
		if cmd.Flags().Changed("no-mpris") {
			flags.NoMpris = lo.Must(cmd.Flags().GetBool("no-mpris"))
		}
		return run(cmd.Context(), flags)
	},
}

func init() {
	rootCmd.Flags().StringP("config", "c", "", "Read this config file after the default ones")
	rootCmd.Flags().StringP("engine", "e", config.EngineSim, `Playback engine: "sim" or "mpv"`)
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.EngineSim, config.EngineMpv}, cobra.ShellCompDirectiveNoFileComp
	}))
	rootCmd.Flags().Float64P("frame-rate", "r", 24, "Frame rate of the reviewed clip")
	rootCmd.Flags().Bool("no-mpris", false, "Do not expose the player over MPRIS")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
