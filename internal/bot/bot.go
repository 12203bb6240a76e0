package bot

import (
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Handler processes one update
type Handler func(b *Bot, update tgbotapi.Update) error

// Bot represents a configurable Telegram bot
type Bot struct {
	Client     *tgbotapi.BotAPI
	updateChan tgbotapi.UpdatesChannel
	stopChan   chan struct{}
	name       string
	mu         sync.Mutex
}

// New creates a new bot instance
func New(name, token string) (*Bot, error) {
	botClient, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return NewWithAPI(name, botClient), nil
}

// NewWithAPI wraps an already authorized client, e.g. one pointed at a
// different API endpoint
func NewWithAPI(name string, client *tgbotapi.BotAPI) *Bot {
	return &Bot{
		Client:   client,
		stopChan: make(chan struct{}),
		name:     name,
	}
}

// Start begins processing updates with custom handlers. Callback handlers are
// keyed by the callback data up to the first ':'.
func (b *Bot) Start(
	commandHandlers map[string]Handler,
	messageHandlers []Handler,
	callbackHandlers map[string]Handler,
) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	b.updateChan = b.Client.GetUpdatesChan(updateConfig)

	log.Printf("[%s] authorized on account %s", b.name, b.Client.Self.UserName)

	for {
		select {
		case update := <-b.updateChan:
			go b.processUpdate(update, commandHandlers, messageHandlers, callbackHandlers)
		case <-b.stopChan:
			b.Client.StopReceivingUpdates()
			return
		}
	}
}

// processUpdate handles incoming updates with custom handlers
func (b *Bot) processUpdate(
	update tgbotapi.Update,
	commandHandlers map[string]Handler,
	messageHandlers []Handler,
	callbackHandlers map[string]Handler,
) {
	if update.Message != nil && update.Message.IsCommand() {
		if handler, exists := commandHandlers[update.Message.Command()]; exists {
			if err := handler(b, update); err != nil {
				log.Printf("[%s] command handler error: %v", b.name, err)
			}
			return
		}
	}

	if update.CallbackQuery != nil {
		key, _, _ := strings.Cut(update.CallbackQuery.Data, ":")
		if handler, exists := callbackHandlers[key]; exists {
			if err := handler(b, update); err != nil {
				log.Printf("[%s] callback handler error: %v", b.name, err)
			}
		}
		return
	}

	if update.Message == nil {
		return
	}

	for _, handler := range messageHandlers {
		if err := handler(b, update); err != nil {
			log.Printf("[%s] message handler error: %v", b.name, err)
		}
	}
}

// Stop halts the bot
func (b *Bot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopChan <- struct{}{}
}

func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.Client.Send(msg)
	return err
}

func (b *Bot) SendMessageWithButtons(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.Client.Send(msg)
	return err
}
