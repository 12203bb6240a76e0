package admin

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricle/internal/bot"
	"github.com/sukalov/lyricle/internal/puzzle"
)

// batchListLimit keeps /batch replies under the telegram message size
const batchListLimit = 50

// BatchSource is the curated batch of the last run
type BatchSource interface {
	Init(ctx context.Context) error
	Sorted() []puzzle.Record
	Find(spotifyID string) (puzzle.Record, bool)
	RemoveRecord(ctx context.Context, spotifyID string) error
}

// loadBatch refreshes the batch from the store, since curation runs in
// another process. It reports false after replying when there is nothing to read.
func (h *AdminHandlers) loadBatch(ctx context.Context, b *bot.Bot, chatID int64) (bool, error) {
	if h.batch == nil {
		return false, b.SendMessage(chatID, "batch is not stored")
	}
	if err := h.batch.Init(ctx); err != nil {
		return false, b.SendMessage(chatID, fmt.Sprintf("failed to load batch: %v", err))
	}
	return true, nil
}

// batchHandler lists the curated batch ordered by spotify ID
func (h *AdminHandlers) batchHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	if !h.isAdmin(b, message) {
		return nil
	}
	ctx := context.Background()
	if ok, err := h.loadBatch(ctx, b, message.Chat.ID); !ok {
		return err
	}
	return b.SendMessage(message.Chat.ID, FormatBatch(h.batch.Sorted(), batchListLimit))
}

// recordHandler shows the chorus of one record
func (h *AdminHandlers) recordHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	if !h.isAdmin(b, message) {
		return nil
	}
	id := strings.TrimSpace(message.CommandArguments())
	if id == "" {
		return b.SendMessage(message.Chat.ID, "usage: /record <spotify id>")
	}
	ctx := context.Background()
	if ok, err := h.loadBatch(ctx, b, message.Chat.ID); !ok {
		return err
	}

	record, found := h.batch.Find(id)
	if !found {
		return b.SendMessage(message.Chat.ID, fmt.Sprintf("record %s not found", id))
	}
	return b.SendMessage(message.Chat.ID, fmt.Sprintf("%s\n\n%s", puzzle.FormatSongName(record.Title, record.Artist), record.Chorus))
}

// dropHandler removes a record from the stored batch
func (h *AdminHandlers) dropHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	if !h.isAdmin(b, message) {
		return nil
	}
	id := strings.TrimSpace(message.CommandArguments())
	if id == "" {
		return b.SendMessage(message.Chat.ID, "usage: /drop <spotify id>")
	}
	ctx := context.Background()
	if ok, err := h.loadBatch(ctx, b, message.Chat.ID); !ok {
		return err
	}

	if err := h.batch.RemoveRecord(ctx, id); err != nil {
		return b.SendMessage(message.Chat.ID, fmt.Sprintf("failed to drop: %v", err))
	}
	return b.SendMessage(message.Chat.ID, fmt.Sprintf("dropped %s", id))
}

// FormatBatch renders one "id: Artist - Title" line per record, up to limit
func FormatBatch(records []puzzle.Record, limit int) string {
	if len(records) == 0 {
		return "batch is empty"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d records", len(records))
	for i, r := range records {
		if i == limit {
			fmt.Fprintf(&sb, "\n(showing %d of %d)", limit, len(records))
			break
		}
		fmt.Fprintf(&sb, "\n%s: %s", r.SpotifyID, puzzle.FormatSongName(r.Title, r.Artist))
	}
	return sb.String()
}
