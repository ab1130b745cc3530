// Command voicelist serves POST /transcribe/, or with --file processes one
// recording and prints the JSON result.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/kbukum/voicelist/app"
	"github.com/kbukum/voicelist/config"
	"github.com/kbukum/voicelist/transcription"
	"github.com/kbukum/voicelist/version"
)

func main() {
	var (
		configFile  = pflag.StringP("config", "c", "", "path to config.yml")
		envFile     = pflag.String("env-file", "", "path to .env file")
		file        = pflag.StringP("file", "f", "", "process one .mp3 file and exit")
		extractor   = pflag.StringP("extractor", "e", "", "extractor for --file: heuristic or llm")
		language    = pflag.StringP("language", "l", "", "ISO-639-1 language hint for --file")
		showVersion = pflag.BoolP("version", "v", false, "print version and exit")
	)
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.Short())
		return
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	var cfg app.Config
	if err := config.LoadConfig(app.ServiceName, &cfg, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "voicelist: %v\n", err)
		os.Exit(1)
	}
	if *file != "" {
		// Keep stdout clean for the JSON result.
		cfg.Logging.Output = "stderr"
	}

	build := app.New
	if *file != "" {
		build = app.NewTask
	}
	svc, err := build(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "voicelist: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if *file == "" {
		err = svc.Run(ctx)
	} else {
		err = svc.App.RunTask(ctx, func(ctx context.Context) error {
			resp, err := svc.Handler.Process(ctx, *extractor, transcription.Request{
				AudioPath: *file,
				FileName:  filepath.Base(*file),
				Language:  *language,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(resp)
		})
	}
	if err != nil {
		svc.App.Logger.Error("voicelist exited with error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
