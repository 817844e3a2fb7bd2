package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/service/system"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print arming status, alarm status and sensors.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSystem(cmd, nil, func(ctx context.Context, sys *system.System) error {
				return printStatus(ctx, cmd.OutOrStdout(), sys)
			})
		},
	}
}

func newArmCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "arm home|away",
		Short:     "Arm the system; every active sensor is reset.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"home", "away"},
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseArmingStatus(args[0])
			if err != nil {
				return err
			}

			if !status.IsArmed() {
				return fmt.Errorf("use the disarm command instead of %q", args[0])
			}

			return setArming(cmd, status)
		},
	}
}

func newDisarmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disarm",
		Short: "Disarm the system and clear any alarm.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setArming(cmd, domain.Disarmed)
		},
	}
}

func setArming(cmd *cobra.Command, status domain.ArmingStatus) error {
	return runWithSystem(cmd, nil, func(ctx context.Context, sys *system.System) error {
		if err := sys.Controller.SetArmingStatus(ctx, status); err != nil {
			return err
		}

		return printStatus(ctx, cmd.OutOrStdout(), sys)
	})
}

func printStatus(ctx context.Context, w io.Writer, sys *system.System) error {
	report, err := sys.Report(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Arming: %s (%s)\n", report.Arming, report.Arming.Description())
	_, _ = fmt.Fprintf(w, "Alarm:  %s (%s)\n", report.Alarm, report.Alarm.Description())

	return printSensors(w, report.Sensors)
}

func printSensors(w io.Writer, sensors []*domain.Sensor) error {
	if len(sensors) == 0 {
		_, _ = fmt.Fprintln(w, "No sensors.")

		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tTYPE\tSTATE\tID")

	for _, s := range sensors {
		state := "inactive"
		if s.Active {
			state = "active"
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.Type, state, s.ID)
	}

	return tw.Flush()
}
