package main

import (
	"fmt"
	"time"

	"github.com/phrazzld/flashloop/internal/domain/rest"
	"github.com/spf13/cobra"
)

func phaseCmd() *cobra.Command {
	var elapsed, total float64

	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Print the breathing phase and countdown at a point in a rest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if elapsed < 0 || total < 0 {
				return fmt.Errorf("elapsed and total must be non-negative")
			}
			countdown := rest.NewCountdown(seconds(total))
			s := countdown.StatusAt(seconds(elapsed))
			fmt.Fprintf(cmd.OutOrStdout(), "phase=%s ratio=%.2f remaining=%ds\n", s.Phase, s.Ratio, s.Remaining)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&elapsed, "elapsed", "e", 0, "Seconds since the rest began")
	cmd.Flags().Float64Var(&total, "total", rest.DefaultDuration.Seconds(), "Rest length in seconds")
	return cmd
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
