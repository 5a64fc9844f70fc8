package cli

import (
	"fmt"

	freqdetector "github.com/mherrerarendon/freq-detector"
	"github.com/mherrerarendon/freq-detector/internal/audio"
	"github.com/spf13/cobra"
)

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE.wav",
		Short: "Print the detected frequency of every frame",
		Long: `Print one CSV line per full frame: the frame number, its start time in seconds and the detected
frequency in Hz, or "-" when no periodic component was found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, detector, err := setup(cmd)
			if err != nil {
				return err
			}

			clip, err := audio.ReadWAV(args[0])
			if err != nil {
				return err
			}
			ws, err := freqdetector.NewWorkspace(settings.FrameSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "frame,start_seconds,frequency_hz")

			frames, detected := 0, 0
			for i, frame := range clip.Frames(settings.FrameSize) {
				start := float64(i*settings.FrameSize) / clip.SampleRate
				frequency, ok := detector.DetectFrequencyWithWorkspace(frame, clip.SampleRate, ws)
				if ok {
					fmt.Fprintf(out, "%d,%.4f,%.3f\n", i, start, frequency)
					detected++
				} else {
					fmt.Fprintf(out, "%d,%.4f,-\n", i, start)
				}
				frames++
			}

			if frames == 0 {
				logger.Warn("clip is shorter than one frame", "file", args[0],
					"samples", len(clip.Samples), "frame_size", settings.FrameSize)
			}
			logger.Debug("detection finished", "file", args[0], "algorithm", settings.Algorithm,
				"sample_rate", clip.SampleRate, "frames", frames, "detected", detected)
			return nil
		},
	}
}
