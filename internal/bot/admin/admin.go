package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricle/internal/bot"
	"github.com/sukalov/lyricle/internal/curate"
	"github.com/sukalov/lyricle/internal/puzzle"
)

// SkipSource reports skip counts of a curation run; an empty runID means the last one
type SkipSource interface {
	GetSkipCounts(ctx context.Context, runID string) (string, map[string]int, error)
}

type AdminHandlers struct {
	cfg    curate.Config
	skips  SkipSource
	batch  BatchSource
	admins map[string]bool
}

func NewAdminHandlers(cfg curate.Config, skips SkipSource, batch BatchSource, adminUsernames []string) *AdminHandlers {
	admins := make(map[string]bool)
	for _, username := range adminUsernames {
		admins[username] = true
	}

	return &AdminHandlers{
		cfg:    cfg,
		skips:  skips,
		batch:  batch,
		admins: admins,
	}
}

func (h *AdminHandlers) isAdmin(b *bot.Bot, message *tgbotapi.Message) bool {
	if h.admins[message.From.UserName] {
		return true
	}
	_ = b.SendMessage(message.Chat.ID, "you are not an admin")
	return false
}

// censorHandler replies with the censored command argument
func (h *AdminHandlers) censorHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	if !h.isAdmin(b, message) {
		return nil
	}

	text := message.CommandArguments()
	if text == "" {
		return b.SendMessage(message.Chat.ID, "usage: /censor <text>")
	}
	if h.cfg.Censor == nil {
		return b.SendMessage(message.Chat.ID, "no banned words loaded")
	}
	return b.SendMessage(message.Chat.ID, h.cfg.Censor.Censor(text))
}

// chorusHandler runs the full pipeline over pasted raw lyrics
func (h *AdminHandlers) chorusHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	if !h.isAdmin(b, message) {
		return nil
	}

	raw := message.CommandArguments()
	if raw == "" {
		return b.SendMessage(message.Chat.ID, "usage: /chorus <raw lyrics>")
	}

	record, err := curate.Process(puzzle.Song{Lyrics: raw}, h.cfg)
	if err != nil {
		return b.SendMessage(message.Chat.ID, fmt.Sprintf("skipped: %s (%v)", curate.SkipReason(err), err))
	}
	return b.SendMessage(message.Chat.ID, record.Chorus)
}

func (h *AdminHandlers) skipsHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	if !h.isAdmin(b, message) {
		return nil
	}
	if h.skips == nil {
		return b.SendMessage(message.Chat.ID, "skip counts are not stored")
	}

	runID, counts, err := h.skips.GetSkipCounts(context.Background(), strings.TrimSpace(message.CommandArguments()))
	if err != nil {
		return b.SendMessage(message.Chat.ID, fmt.Sprintf("failed to read skip counts: %v", err))
	}
	if runID == "" {
		return b.SendMessage(message.Chat.ID, "no curation runs yet")
	}

	return b.SendMessage(message.Chat.ID, FormatSkips(runID, counts))
}

// FormatSkips renders skip counts sorted by reason
func FormatSkips(runID string, counts map[string]int) string {
	reasons := make([]string, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	var sb strings.Builder
	fmt.Fprintf(&sb, "run %s\n", runID)
	if len(reasons) == 0 {
		sb.WriteString("no skips")
		return sb.String()
	}
	for _, reason := range reasons {
		fmt.Fprintf(&sb, "%s: %d\n", reason, counts[reason])
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// SetupHandlers starts the admin bot in the background
func SetupHandlers(adminBot *bot.Bot, cfg curate.Config, skips SkipSource, batch BatchSource, puzzles PuzzleSource, adminUsernames []string) {
	handlers := NewAdminHandlers(cfg, skips, batch, adminUsernames)
	search := NewSearchHandler(adminUsernames, puzzles)

	commandHandlers := map[string]bot.Handler{
		"censor":     handlers.censorHandler,
		"chorus":     handlers.chorusHandler,
		"skips":      handlers.skipsHandler,
		"batch":      handlers.batchHandler,
		"record":     handlers.recordHandler,
		"drop":       handlers.dropHandler,
		"findpuzzle": search.findPuzzleHandler,
	}

	callbackHandlers := map[string]bot.Handler{
		showPuzzlePrefix: search.callbackHandler,
	}

	go adminBot.Start(commandHandlers, []bot.Handler{search.messageHandler}, callbackHandlers)
}
