package cli

import (
	"fmt"

	freqdetector "github.com/mherrerarendon/freq-detector"
	"github.com/mherrerarendon/freq-detector/internal/audio"
	"github.com/spf13/cobra"
)

func newSpectrumCommand() *cobra.Command {
	var frameIndex int

	cmd := &cobra.Command{
		Use:   "spectrum FILE.wav",
		Short: "Dump the spectrum a detector searches, as CSV",
		Long: `Print the unscaled spectrum that the selected detector searches for one frame, as "bin,value" CSV
lines covering the quefrency range of the configured frequency bounds. Intended for plotting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, detector, err := setup(cmd)
			if err != nil {
				return err
			}
			inspector, ok := detector.(freqdetector.SpectrumInspector)
			if !ok {
				return fmt.Errorf("algorithm %s does not expose its spectrum", settings.Algorithm)
			}

			clip, err := audio.ReadWAV(args[0])
			if err != nil {
				return err
			}
			frame, ok := clip.Frame(frameIndex, settings.FrameSize)
			if !ok {
				return fmt.Errorf("%s has no frame %d of %d samples", args[0], frameIndex, settings.FrameSize)
			}

			lower, upper := inspector.RelevantRange(clip.SampleRate, len(frame))
			logger.Debug("spectrum range", "algorithm", inspector.Name(), "lower", lower, "upper", upper)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "bin,value")
			for _, p := range inspector.Spectrum(frame, clip.SampleRate) {
				fmt.Fprintf(out, "%d,%g\n", p.Bin, p.Value)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&frameIndex, "frame", "f", 0, "index of the frame to inspect")
	return cmd
}
