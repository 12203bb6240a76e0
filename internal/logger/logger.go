package logger

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sukalov/lyricle/internal/utils"
	"github.com/sukalov/lyricle/internal/utils/e"
)

var (
	ChannelID int64
	once      sync.Once
	botClient BotClient
	console   = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05", NoColor: true}).
			With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

type BotClient interface {
	SendMessage(chatID int64, text string) error
}

// Init forwards every log line to the LOG_CHANNEL_ID telegram channel
func Init(client BotClient) error {
	var initErr error
	once.Do(func() {
		env, err := utils.LoadEnv([]string{"LOG_CHANNEL_ID"})
		if err != nil {
			initErr = fmt.Errorf("failed to load LOG_CHANNEL_ID: %w", err)
			return
		}

		ChannelID, err = strconv.ParseInt(env["LOG_CHANNEL_ID"], 10, 64)
		if err != nil {
			initErr = fmt.Errorf("failed to parse LOG_CHANNEL_ID: %w", err)
			return
		}

		botClient = client
	})

	return initErr
}

// SetVerbose enables debug lines on the console
func SetVerbose(verbose bool) {
	if verbose {
		console = console.Level(zerolog.DebugLevel)
		return
	}
	console = console.Level(zerolog.InfoLevel)
}

func Info(message string) {
	console.Info().Msg(message)
	sendLog("ℹ️ INFO", message)
}

func Error(message string) {
	console.Error().Msg(message)
	sendLog("❌ ERROR", message)
}

// Debug lines stay on the console
func Debug(message string) {
	console.Debug().Msg(message)
}

func Success(message string) {
	console.Info().Bool("success", true).Msg(message)
	sendLog("✅ SUCCESS", message)
}

func sendLog(prefix, message string) {
	if botClient == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] %s\n%s", timestamp, prefix, message)

	go func() {
		if err := botClient.SendMessage(ChannelID, logMessage); err != nil {
			console.Warn().Err(err).Msg("failed to send log to channel")
		}
	}()
}

// LogWithErr logs message at info level, or at error level together with err,
// and returns err wrapped with message
func LogWithErr(message string, err error) error {
	if err == nil {
		Info(message)
		return nil
	}

	Error(fmt.Sprintf("%s\nError: %v", message, err))

	return e.Wrap(message, err)
}
