package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"sigreader/host/config"
	"sigreader/host/serial"
	"sigreader/host/sim"
	"sigreader/host/stream"
)

var (
	configPath string
	device     string
	baud       int
	rate       int
)

func main() {
	defer glog.Flush()

	// glog logs to files by default; a CLI wants stderr. Users can
	// still override via the bridged flags.
	_ = flag.Set("logtostderr", "true")

	root := &cobra.Command{
		Use:           "sigreader-host",
		Short:         "Host companion for the signal reader firmware",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVarP(&device, "port", "p", "", "serial device path")
	root.PersistentFlags().IntVarP(&baud, "baud-rate", "b", 0, "serial baud rate")
	root.PersistentFlags().IntVarP(&rate, "sampling-rate", "s", 0, "firmware sampling rate in Hz")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(newReadWavCommand(), newStreamCommand(), newSimulateCommand())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file with explicitly set flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if device != "" {
		cfg.Device = device
	}
	if baud != 0 {
		cfg.Baud = baud
	}
	if rate != 0 {
		cfg.SamplingRate = rate
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openPort opens the configured serial device.
func openPort(cfg *config.Config) (serial.Port, error) {
	if cfg.Device == "" {
		return nil, fmt.Errorf("no serial device configured (use --port or the config file)")
	}
	sc := serial.DefaultConfig(cfg.Device)
	sc.Baud = cfg.Baud
	return serial.Open(sc)
}

func newReadWavCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "read-wav",
		Short: "Capture the sample stream into a WAV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			port, err := openPort(cfg)
			if err != nil {
				return err
			}
			defer port.Close()

			return stream.CaptureWAV(cmd.Context(), port, output, cfg.SamplingRate)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "WAV file to write")
	cmd.MarkFlagRequired("output")
	return cmd
}

func newStreamCommand() *cobra.Command {
	var amplitude string

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Decode the sample stream to raw 8-bit PCM on stdout",
		Long: "Decode the sample stream to raw unsigned 8-bit PCM on stdout,\n" +
			"for piping into an audio player, e.g.:\n\n" +
			"  sigreader-host stream -p /dev/ttyUSB0 | pacat --format=u8 --channels=1 --rate=100000",
		RunE: func(cmd *cobra.Command, args []string) error {
			amp, err := stream.ParseAmplitude(amplitude)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			port, err := openPort(cfg)
			if err != nil {
				return err
			}
			defer port.Close()

			return stream.StreamPCM(cmd.Context(), port, os.Stdout, cfg.SamplingRate, amp)
		},
	}
	cmd.Flags().StringVarP(&amplitude, "wave-amplitude", "w", "full", "PCM amplitude mapping (full or half)")
	return cmd
}

func newSimulateCommand() *cobra.Command {
	var (
		tone     uint64
		duration time.Duration
		output   string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the acquisition core on the host against a square wave",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var sink *os.File
			switch output {
			case "", "-":
				sink = os.Stdout
			default:
				sink, err = os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer sink.Close()
			}

			return sim.Run(cmd.Context(), sim.Options{
				Rate:            uint64(cfg.SamplingRate),
				Tone:            tone,
				Sink:            sink,
				MonitorInterval: time.Duration(cfg.MonitorIntervalMs) * time.Millisecond,
				Duration:        duration,
			})
		},
	}
	cmd.Flags().Uint64VarP(&tone, "tone", "t", 440, "square wave frequency in Hz")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "how long to run (0 = until interrupted)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the byte stream to a file instead of stdout")
	return cmd
}
