// Package telegram оборачивает Telegram Bot API: отправку текста, меню и файлов
// и получение входящих сообщений long polling'ом.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/magabrotheeeer/studio-orders/internal/config"
)

const (
	ButtonNewOrder = "Внести картину"
	ButtonMyOrders = "Мои заказы"
)

// Incoming входящее текстовое сообщение.
type Incoming struct {
	ChatID int64
	Text   string
}

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Client struct {
	api         botAPI
	pollTimeout time.Duration
	log         *slog.Logger
}

// New авторизуется в Bot API по токену из конфигурации.
func New(cfg config.Telegram, log *slog.Logger) (*Client, error) {
	const op = "telegram.New"
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	api.Debug = cfg.TelegramDebug
	log.Info("authorized in telegram", slog.String("bot", api.Self.UserName))
	return newClient(api, cfg.PollTimeout, log), nil
}

func newClient(api botAPI, pollTimeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		api:         api,
		pollTimeout: pollTimeout,
		log:         log,
	}
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(ButtonNewOrder)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(ButtonMyOrders)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func (c *Client) send(ctx context.Context, op string, msg tgbotapi.Chattable) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendText отправляет текст, не меняя клавиатуру.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	return c.send(ctx, "telegram.SendText", tgbotapi.NewMessage(chatID, text))
}

// SendMenu отправляет текст с главным меню.
func (c *Client) SendMenu(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainKeyboard()
	return c.send(ctx, "telegram.SendMenu", msg)
}

// SendPrompt отправляет вопрос и убирает клавиатуру, чтобы ответ вводился текстом.
func (c *Client) SendPrompt(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	return c.send(ctx, "telegram.SendPrompt", msg)
}

// SendDocument отправляет файл с подписью и главным меню.
func (c *Client) SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	doc.ReplyMarkup = mainKeyboard()
	return c.send(ctx, "telegram.SendDocument", doc)
}

// Updates запускает long polling и отдаёт текстовые сообщения до отмены ctx.
func (c *Client) Updates(ctx context.Context) <-chan Incoming {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(c.pollTimeout.Seconds())
	updates := c.api.GetUpdatesChan(u)

	out := make(chan Incoming)
	go func() {
		defer close(out)
		defer c.api.StopReceivingUpdates()
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message == nil || update.Message.Text == "" {
					continue
				}
				in := Incoming{ChatID: update.Message.Chat.ID, Text: update.Message.Text}
				select {
				case out <- in:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
