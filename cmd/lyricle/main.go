package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/sukalov/lyricle/internal/bot"
	"github.com/sukalov/lyricle/internal/censor"
	"github.com/sukalov/lyricle/internal/curate"
	"github.com/sukalov/lyricle/internal/db"
	"github.com/sukalov/lyricle/internal/logger"
	"github.com/sukalov/lyricle/internal/lyrics"
	"github.com/sukalov/lyricle/internal/puzzle"
	"github.com/sukalov/lyricle/internal/redis"
	"github.com/sukalov/lyricle/internal/state"
	"github.com/sukalov/lyricle/internal/utils"
)

type options struct {
	input        string
	output       string
	bannedWords  string
	overrides    string
	uncensored   bool
	workers      int
	maxWords     int
	minUnique    int
	verbose      bool
	skipProgress bool
}

func main() {
	opts := parseFlags()
	logger.SetVerbose(opts.verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("curation failed: %v", err)
	}
}

func parseFlags() options {
	defaults := curate.DefaultConfig()
	var opts options

	flag.StringVar(&opts.input, "input", "data/topSongs.json", "JSON array of songs to curate")
	flag.StringVar(&opts.output, "output", "data/gameData.json", "Output game data file")
	flag.StringVar(&opts.bannedWords, "banned", "api/bannedWords.json", "Base64 banned word list")
	flag.StringVar(&opts.overrides, "overrides", "", "JSON override table applied after censoring")
	flag.BoolVar(&opts.uncensored, "uncensored", false, "Write plain choruses without censoring")
	flag.IntVar(&opts.workers, "workers", defaults.Workers, "Songs processed in parallel")
	flag.IntVar(&opts.maxWords, "max-words", defaults.Processing.MaxTotalWords, "Maximum words in a chorus")
	flag.IntVar(&opts.minUnique, "min-unique", defaults.Processing.MinUniqueWords, "Minimum distinct words in a chorus")
	flag.BoolVar(&opts.verbose, "verbose", false, "Log every skipped song")
	flag.BoolVar(&opts.skipProgress, "no-progress", false, "Hide the progress bar")
	flag.Parse()

	return opts
}

func run(ctx context.Context, opts options) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	songs, err := puzzle.LoadSongs(opts.input)
	if err != nil {
		return err
	}

	initLogChannel()

	var curateOpts []curate.Option
	if env, err := utils.LoadEnv([]string{"GENIUS_ACCESS_TOKEN"}); err == nil {
		curateOpts = append(curateOpts, curate.WithFinder(lyrics.NewService(env["GENIUS_ACCESS_TOKEN"])))
	} else {
		logger.Info("GENIUS_ACCESS_TOKEN not set, songs without lyrics will be skipped")
	}

	var store state.Store
	if env, err := utils.LoadEnv([]string{"REDIS_URL", "REDIS_PASSWORD"}); err == nil {
		manager, err := redis.NewDBManager(env["REDIS_URL"], env["REDIS_PASSWORD"])
		if err != nil {
			return err
		}
		defer manager.Close()
		store = manager
		curateOpts = append(curateOpts, curate.WithSkipCounter(manager))
	}

	batch := state.NewStateManager(store)
	if err := batch.Clear(ctx); err != nil {
		return fmt.Errorf("failed to reset stored batch: %w", err)
	}
	curateOpts = append(curateOpts, curate.WithSink(batch))

	if !opts.skipProgress {
		bar := progressbar.Default(int64(len(songs)), "curating")
		defer bar.Close()
		curateOpts = append(curateOpts, curate.WithProgress(func() { _ = bar.Add(1) }))
	}

	records, summary, err := curate.New(cfg, curateOpts...).Run(ctx, songs)
	if err != nil {
		return err
	}

	if err := puzzle.SaveRecords(opts.output, records); err != nil {
		return err
	}

	if utils.HasEnv("TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN") {
		if err := db.Init(ctx); err != nil {
			return logger.LogWithErr("failed to open puzzle book", err)
		}
		defer db.Close()
		if err := db.Puzzlebook.SaveRun(ctx, summary.RunID, records); err != nil {
			return logger.LogWithErr("failed to save run to puzzle book", err)
		}
	}

	fmt.Printf("\nTotal Songs Queried: %d\n", summary.Queried)
	fmt.Printf("Total Songs in Game Data: %d\n", summary.Accepted)
	for reason, count := range summary.Skips {
		fmt.Printf("  skipped (%s): %d\n", reason, count)
	}
	fmt.Printf("Data saved to %s\n", opts.output)
	return nil
}

func buildConfig(opts options) (curate.Config, error) {
	cfg := curate.DefaultConfig()
	cfg.Workers = opts.workers
	cfg.Processing.MaxTotalWords = opts.maxWords
	cfg.Processing.MinUniqueWords = opts.minUnique

	if !opts.uncensored {
		words, err := censor.LoadBannedWords(opts.bannedWords)
		if err != nil {
			return cfg, err
		}
		cfg.Censor = censor.New(words)
		logger.Info(fmt.Sprintf("Loaded %d banned words", len(cfg.Censor.Words())))
	}

	if opts.overrides != "" {
		table, err := censor.LoadOverrides(opts.overrides)
		if err != nil {
			return cfg, err
		}
		cfg.Overrides = table
		logger.Info(fmt.Sprintf("Loaded %d overrides", table.Len()))
	}

	return cfg, nil
}

// initLogChannel mirrors logs to telegram when BOT_TOKEN and LOG_CHANNEL_ID are set
func initLogChannel() {
	if !utils.HasEnv("BOT_TOKEN", "LOG_CHANNEL_ID") {
		return
	}
	env, _ := utils.LoadEnv([]string{"BOT_TOKEN"})
	logBot, err := bot.New("log", env["BOT_TOKEN"])
	if err != nil {
		log.Printf("failed to create log bot: %v", err)
		return
	}
	if err := logger.Init(logBot); err != nil {
		log.Printf("failed to init log channel: %v", err)
	}
}
