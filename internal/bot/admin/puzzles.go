package admin

import (
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricle/internal/bot"
	"github.com/sukalov/lyricle/internal/db"
)

const showPuzzlePrefix = "show_puzzle"

// PuzzleSource is the stored puzzle book
type PuzzleSource interface {
	FindPuzzleByID(id string) (db.Puzzle, bool)
	SearchPuzzles(query string) []db.Puzzle
	FormatPuzzleName(pz db.Puzzle) string
}

type SearchHandler struct {
	admins         map[string]bool
	puzzles        PuzzleSource
	mu             sync.Mutex
	awaitingSearch map[int64]bool
}

func NewSearchHandler(adminUsernames []string, puzzles PuzzleSource) *SearchHandler {
	admins := make(map[string]bool)
	for _, username := range adminUsernames {
		admins[username] = true
	}

	return &SearchHandler{
		admins:         admins,
		puzzles:        puzzles,
		awaitingSearch: make(map[int64]bool),
	}
}

func (h *SearchHandler) findPuzzleHandler(b *bot.Bot, update tgbotapi.Update) error {
	if !h.admins[update.Message.From.UserName] {
		return b.SendMessage(update.Message.Chat.ID, "you are not an admin")
	}
	if h.puzzles == nil {
		return b.SendMessage(update.Message.Chat.ID, "puzzle book is not configured")
	}

	h.mu.Lock()
	h.awaitingSearch[update.Message.Chat.ID] = true
	h.mu.Unlock()
	return b.SendMessage(update.Message.Chat.ID, "send a song title or artist")
}

func (h *SearchHandler) messageHandler(b *bot.Bot, update tgbotapi.Update) error {
	h.mu.Lock()
	awaiting := h.awaitingSearch[update.Message.Chat.ID]
	delete(h.awaitingSearch, update.Message.Chat.ID)
	h.mu.Unlock()

	if !awaiting {
		return b.SendMessage(update.Message.Chat.ID, "to look up a puzzle, start with /findpuzzle")
	}

	results := h.puzzles.SearchPuzzles(update.Message.Text)
	if len(results) == 0 {
		return b.SendMessage(update.Message.Chat.ID, "nothing found")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, pz := range results {
		// Limit the number of results to prevent huge keyboards
		if len(rows) >= 10 {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.puzzles.FormatPuzzleName(pz), showPuzzlePrefix+":"+pz.SpotifyID),
		))
	}

	message := "found puzzles:"
	if len(results) > 10 {
		message += fmt.Sprintf("\n(showing 10 of %d)", len(results))
	}

	return b.SendMessageWithButtons(update.Message.Chat.ID, message, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *SearchHandler) callbackHandler(b *bot.Bot, update tgbotapi.Update) error {
	chatID := update.CallbackQuery.Message.Chat.ID
	if !h.admins[update.CallbackQuery.From.UserName] {
		return b.SendMessage(chatID, "you are not an admin")
	}
	if h.puzzles == nil {
		return b.SendMessage(chatID, "puzzle book is not configured")
	}

	id := strings.TrimPrefix(update.CallbackQuery.Data, showPuzzlePrefix+":")

	pz, found := h.puzzles.FindPuzzleByID(id)
	if !found {
		return b.SendMessage(chatID, "puzzle not found")
	}

	return b.SendMessage(chatID, fmt.Sprintf("%s\nrun: %s\n\n%s", h.puzzles.FormatPuzzleName(pz), pz.RunID, pz.Chorus))
}
