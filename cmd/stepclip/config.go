package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/stepclip/internal/clip"
	"go.klb.dev/stepclip/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and STEPCLIP_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → STEPCLIP_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("stepclip")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/stepclip/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/stepclip", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("STEPCLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: warn, debug with --log-file)")
	cmd.Flags().String("log-file", "", "append logs to this file instead of stderr")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addClipboardFlags adds the clipboard backend selection flag.
func addClipboardFlags(cmd *cobra.Command) {
	cmd.Flags().String("clipboard", string(clip.KindAuto), "clipboard backend: auto|native|exec|none")
}

// setupLogging reads logging flags from viper and configures slog. When
// ownsTerminal is set (the TUI) and no log file is given, logging is
// silenced. The returned func closes the log file, if any.
func setupLogging(v *viper.Viper, ownsTerminal bool) (func(), error) {
	path := v.GetString("log-file")
	if path == "" {
		if ownsTerminal {
			logging.Discard()
		} else {
			resolveLogging(os.Stderr, false, v.GetString("log-format"), v.GetString("log-level"))
		}
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	resolveLogging(f, true, v.GetString("log-format"), v.GetString("log-level"))
	return func() { _ = f.Close() }, nil
}

// resolveLogging sets up the global slog logger after flags are parsed.
// Terminal tools stay quiet by default; a dedicated log file gets debug.
func resolveLogging(w io.Writer, toFile bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if toFile {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("warn")
		}
	}
	logging.Setup(w, format, level)
}

// newBackend builds the clipboard backend selected by the "clipboard" key.
func newBackend(v *viper.Viper) (clip.Backend, error) {
	kind, err := clip.ParseKind(v.GetString("clipboard"))
	if err != nil {
		return nil, err
	}
	return clip.New(kind)
}
