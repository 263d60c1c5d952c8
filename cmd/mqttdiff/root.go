package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arvenn/mqttdiff/internal/broker"
	"github.com/arvenn/mqttdiff/internal/config"
	"github.com/arvenn/mqttdiff/internal/metrics"
	"github.com/arvenn/mqttdiff/pkg/compare"
)

var (
	cfgPath    string
	outputPath string
	debug      bool
)

// rootCmd is the whole pipeline; there are no storage subcommands.
var rootCmd = &cobra.Command{
	Use:   "mqttdiff",
	Short: "Subscribe to an MQTT topic and diff consecutive events",
	Long: `mqttdiff connects to an MQTT broker, subscribes to a single topic and,
for every two consecutive messages, prints their timestamps and a structural
diff of their payloads (added, removed and changed fields).`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config '%s': %v\n", cfgPath, err)
			os.Exit(2)
		}
		if outputPath != "" {
			cfg.OutputFile = outputPath
		}
		run(cfg)
	},
}

func run(cfg *config.Config) {
	log := slog.Default()

	sink, err := compare.NewLineSink(os.Stdout, cfg.OutputFile)
	if err != nil {
		log.Warn("output file unavailable, writing to stdout only", "error", err)
		sink, _ = compare.NewLineSink(os.Stdout, "")
	}
	defer sink.Close()

	seq := compare.NewSequencer(sink, log)

	if cfg.MetricsAddr != "" {
		go func() {
			log.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				log.Error("metrics server", "error", err)
			}
		}()
	}

	cli := broker.New(broker.Options{
		URI:       cfg.BrokerURI(),
		ClientID:  cfg.ClientID,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Keepalive: time.Duration(cfg.Keepalive) * time.Second,
		Topic:     cfg.Topic,
		QoS:       byte(cfg.QoS),
	}, seq.OnMessage, sink.Writeln, log)

	sink.Writeln(fmt.Sprintf("Connecting to %s:%d (keepalive=%d)", cfg.Host, cfg.Port, cfg.Keepalive))
	if err := cli.Connect(); err != nil {
		fatal("connect to broker", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	sink.Writeln("Interrupted, exiting")
	cli.Disconnect()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.json", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Optional path to also write output to (overrides config output_file)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
}
