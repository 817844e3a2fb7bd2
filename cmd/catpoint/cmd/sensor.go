package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/service/system"
)

func newSensorCommand() *cobra.Command {
	sensor := &cobra.Command{
		Use:   "sensor",
		Short: "Manage door, window and motion sensors.",
	}

	sensor.AddCommand(
		&cobra.Command{
			Use:   "add <name> <door|window|motion>",
			Short: "Add an inactive sensor.",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				sensorType, err := domain.ParseSensorType(args[1])
				if err != nil {
					return err
				}

				return runWithSystem(cmd, nil, func(ctx context.Context, sys *system.System) error {
					if _, findErr := sys.FindSensor(ctx, args[0]); findErr == nil {
						return fmt.Errorf("sensor %q already exists", args[0])
					}

					return sys.Controller.AddSensor(ctx, domain.NewSensor(args[0], sensorType))
				})
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a sensor.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSensor(cmd, args[0], func(ctx context.Context, sys *system.System, s *domain.Sensor) error {
					return sys.Controller.RemoveSensor(ctx, s)
				})
			},
		},
		&cobra.Command{
			Use:   "activate <name>",
			Short: "Report the sensor as triggered; re-triggering escalates a pending alarm.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSensor(cmd, args[0], func(ctx context.Context, sys *system.System, s *domain.Sensor) error {
					return sys.Controller.ActivateSensor(ctx, s)
				})
			},
		},
		&cobra.Command{
			Use:   "deactivate <name>",
			Short: "Report the sensor as back to normal.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSensor(cmd, args[0], func(ctx context.Context, sys *system.System, s *domain.Sensor) error {
					return sys.Controller.ChangeSensorActivationStatus(ctx, s, false)
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List sensors.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runWithSystem(cmd, nil, func(ctx context.Context, sys *system.System) error {
					sensors, err := sys.Controller.Sensors(ctx)
					if err != nil {
						return err
					}

					return printSensors(cmd.OutOrStdout(), sensors)
				})
			},
		},
	)

	return sensor
}

// withSensor looks the named sensor up, runs fn on it and prints the resulting status.
func withSensor(
	cmd *cobra.Command,
	name string,
	fn func(ctx context.Context, sys *system.System, s *domain.Sensor) error,
) error {
	return runWithSystem(cmd, nil, func(ctx context.Context, sys *system.System) error {
		sensor, err := sys.FindSensor(ctx, name)
		if err != nil {
			return err
		}

		if err = fn(ctx, sys, sensor); err != nil {
			return err
		}

		return printStatus(ctx, cmd.OutOrStdout(), sys)
	})
}
