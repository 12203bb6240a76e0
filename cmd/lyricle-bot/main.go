package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sukalov/lyricle/internal/bot"
	"github.com/sukalov/lyricle/internal/bot/admin"
	"github.com/sukalov/lyricle/internal/censor"
	"github.com/sukalov/lyricle/internal/curate"
	"github.com/sukalov/lyricle/internal/db"
	"github.com/sukalov/lyricle/internal/logger"
	"github.com/sukalov/lyricle/internal/redis"
	"github.com/sukalov/lyricle/internal/state"
	"github.com/sukalov/lyricle/internal/utils"
)

func main() {
	var bannedWords, overrides string
	flag.StringVar(&bannedWords, "banned", "api/bannedWords.json", "Base64 banned word list")
	flag.StringVar(&overrides, "overrides", "", "JSON override table applied after censoring")
	flag.Parse()

	env, err := utils.LoadEnv([]string{"BOT_TOKEN", "ADMIN_USERNAMES"})
	if err != nil {
		log.Fatalf("required env missing: %v", err)
	}

	cfg := curate.DefaultConfig()
	words, err := censor.LoadBannedWords(bannedWords)
	if err != nil {
		log.Fatalf("failed to load banned words: %v", err)
	}
	cfg.Censor = censor.New(words)
	if overrides != "" {
		if cfg.Overrides, err = censor.LoadOverrides(overrides); err != nil {
			log.Fatalf("failed to load overrides: %v", err)
		}
	}

	adminBot, err := bot.New("admin", env["BOT_TOKEN"])
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}
	if utils.HasEnv("LOG_CHANNEL_ID") {
		if err := logger.Init(adminBot); err != nil {
			log.Printf("failed to init log channel: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		skips admin.SkipSource
		batch admin.BatchSource
	)
	if redisEnv, err := utils.LoadEnv([]string{"REDIS_URL", "REDIS_PASSWORD"}); err == nil {
		manager, err := redis.NewDBManager(redisEnv["REDIS_URL"], redisEnv["REDIS_PASSWORD"])
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer manager.Close()
		skips = manager

		stored := state.NewStateManager(manager)
		if err := stored.Init(ctx); err != nil {
			log.Printf("failed to load stored batch: %v", err)
		}
		batch = stored
	}

	var puzzles admin.PuzzleSource
	if utils.HasEnv("TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN") {
		if err := db.Init(ctx); err != nil {
			log.Fatalf("failed to open puzzle book: %v", err)
		}
		defer db.Close()
		puzzles = db.Puzzlebook
	}

	admin.SetupHandlers(adminBot, cfg, skips, batch, puzzles, utils.SplitList(env["ADMIN_USERNAMES"]))
	logger.Info("lyricle admin bot started")

	<-ctx.Done()
	adminBot.Stop()
}
