package notify

import (
	"fmt"
	"net/http"
	"net/url"

	"defectpred/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func sendTelegram(message string, cfg config.Config) error {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		return errors.New("telegram bot token or chat ID is not configured")
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", cfg.TelegramBotToken)

	params := url.Values{}
	params.Add("chat_id", cfg.TelegramChatID)
	params.Add("text", message)
	params.Add("parse_mode", "HTML")

	resp, err := http.PostForm(endpoint, params)
	if err != nil {
		return errors.Wrap(err, "failed to send Telegram notification")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("telegram API returned status code %d", resp.StatusCode)
	}

	log.Info().Msg("sent Telegram notification")
	return nil
}
