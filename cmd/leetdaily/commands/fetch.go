package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/WomB0ComB0/leetcode/lib/configutil"
	"github.com/WomB0ComB0/leetcode/lib/restyutil"
	"github.com/WomB0ComB0/leetcode/lib/scrapers/leetcode"
	"github.com/WomB0ComB0/leetcode/lib/scrapers/leetcode/browser"
	"github.com/WomB0ComB0/leetcode/lib/serviceutil"
	"github.com/WomB0ComB0/leetcode/lib/telemetry"
	"github.com/WomB0ComB0/leetcode/services/daily"

	"github.com/spf13/cobra"
)

type Config struct {
	// where the per-language directories get created, defaults to cwd
	OutputRoot string `json:"output_root"`
	// defaults to https://leetcode.com
	BaseUrl string `json:"base_url"`
	// run the fallback browser with a visible window, for debugging the
	// marker extraction
	Headful  bool           `json:"headful"`
	PostHook daily.PostHook `json:"post_hook"`
}

var configFile *string

func init() {
	configFile = fetchCmd.Flags().String("config", "leetdaily.json5", "The run configuration file.")
	rootCmd.AddCommand(fetchCmd)
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config](*configFile)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}
	}
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--config <path/to/leetdaily.json5>]",
	Short: "Fetches today's challenge and writes per-language stub files.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		tel, err := telemetry.SetupFromEnv(ctx, "leetdaily")
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			tel.Shutdown(shutdownCtx)
		}()
		telemetry.InstrumentPerfStats(ctx)

		cfg := readConfig()
		if *verbose {
			leetcode.SetRestyInstrumentOutput(
				restyutil.NewFilesystemOutput(".dev/resty/leetdaily"),
			)
		}

		client, err := leetcode.NewClient(ctx, leetcode.ClientOptions{
			BaseUrl: cfg.BaseUrl,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize leetcode client", err)
		}

		fallback := func(ctx context.Context) (string, error) {
			return browser.FetchDailySlug(ctx, browser.Options{
				BaseUrl:  cfg.BaseUrl,
				Headless: !cfg.Headful,
			})
		}

		service := daily.NewService(client, fallback, daily.Options{
			OutputRoot: cfg.OutputRoot,
			PostHook:   cfg.PostHook,
		})

		t1 := time.Now()
		err = service.Run(ctx)
		if err != nil {
			serviceutil.Fatal("run failed", err)
		}
		t2 := time.Now()

		slog.Info("run time", "seconds", t2.Sub(t1).Seconds())
	},
}
