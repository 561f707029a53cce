package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/extractdate/internal/profile"
	"github.com/hrygo/extractdate/plugin/extractdate"
	"github.com/hrygo/extractdate/server"
)

const version = "0.1.0"

// errNotExtracted makes the process exit 1 without printing a usage message.
var errNotExtracted = errors.New("no time extracted")

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "extractdate",
		Short:         "Extract a month, day and time mention from Chinese text.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	flags.String("timezone", "", "IANA timezone used to read the current date (default: Local)")
	flags.Int("day-range", profile.Unset, "accept times from now to now+N days")
	flags.String("start-limit", "", `earliest accepted time, "2006-01-02 15:04:05" or "2006-01-02"`)
	flags.String("end-limit", "", "latest accepted time, same layouts as --start-limit")
	flags.Int("day-count", profile.Unset, "accept times from --start-limit to --start-limit+N days")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	v.SetEnvPrefix("extractdate")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(newParseCmd(v), newServeCmd(v))
	return rootCmd
}

func newParseCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Extract a time from the arguments, or from each line of stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProfile(v)
			if err != nil {
				return err
			}
			asJSON := v.GetBool("json")
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				return printResult(out, extract(p, strings.Join(args, " ")), asJSON)
			}

			var failed bool
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if err := printResult(out, extract(p, line), asJSON); err != nil {
					if !errors.Is(err, errNotExtracted) {
						return err
					}
					failed = true
				}
			}
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "failed to read stdin")
			}
			if failed {
				return errNotExtracted
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the result as JSON")
	return cmd
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the extraction HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProfile(v)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			slog.Info("starting extractor server", "profile", p.String(), "version", p.Version)
			return server.NewServer(p, slog.Default()).Start(ctx)
		},
	}
	cmd.Flags().String("addr", "", "address of server")
	cmd.Flags().Int("port", 8081, "port of server")
	cmd.Flags().Float64("rate-limit", 10, "requests per second allowed per client, 0 disables limiting")
	cmd.Flags().Int("rate-burst", 20, "burst size of the per-client limit")
	return cmd
}

// loadProfile builds and validates the profile from flags and EXTRACTDATE_* variables,
// then installs the configured logger as the default.
func loadProfile(v *viper.Viper) (*profile.Profile, error) {
	p := profile.Default()
	p.Version = version
	p.Mode = v.GetString("mode")
	p.Timezone = v.GetString("timezone")
	p.DayRange = v.GetInt("day-range")
	p.StartLimit = v.GetString("start-limit")
	p.EndLimit = v.GetString("end-limit")
	p.DayCount = v.GetInt("day-count")
	p.LogLevel = v.GetString("log-level")
	if v.IsSet("addr") {
		p.Addr = v.GetString("addr")
	}
	if v.IsSet("port") {
		p.Port = v.GetInt("port")
	}
	if v.IsSet("rate-limit") {
		p.RateLimit = v.GetFloat64("rate-limit")
	}
	if v.IsSet("rate-burst") {
		p.RateBurst = v.GetInt("rate-burst")
	}

	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	level, _ := p.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return p, nil
}

func extract(p *profile.Profile, text string) *extractdate.TimeMode {
	return extractdate.New(append(p.ExtractorOptions(), extractdate.WithLogger(slog.Default()))...).Extract(text)
}

func printResult(w io.Writer, m *extractdate.TimeMode, asJSON bool) error {
	if m == nil {
		return errNotExtracted
	}
	if asJSON {
		if err := json.NewEncoder(w).Encode(m); err != nil {
			return errors.Wrap(err, "failed to encode result")
		}
	} else if m.Successful {
		fmt.Fprintf(w, "%s\t%d\n", m.Display, m.Timestamp)
	} else {
		fmt.Fprintf(w, "failed\t%s\n", m.Reason)
	}
	if !m.Successful {
		return errNotExtracted
	}
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errNotExtracted) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
