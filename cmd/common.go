package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/logger"
	"github.com/spigell/talent-match/internal/pipeline"
	"github.com/spigell/talent-match/internal/records"
)

// setup builds the logger and config shared by every command. Any failure is fatal.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: viper.GetString("log-output"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Debug("starting with config", zap.Any("config", config.redacted()))
	return l, config
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (c *Config) sources() pipeline.Sources {
	return pipeline.Sources{
		Applicants: c.Data.Applicants,
		Jobs:       c.Data.Jobs,
		Prospects:  c.Data.Prospects,
	}
}

func (c *Config) loader(l *zap.Logger) *records.Loader {
	return records.NewLoader(c.Data.BaseDir, l)
}
