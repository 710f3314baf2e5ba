// Package notify delivers run-completion notices for long experiment runs
// over Slack and Telegram.
package notify

import (
	"strings"

	"defectpred/config"
)

const (
	ChannelTelegram = "TELEGRAM"
	ChannelSlack    = "SLACK"
	ChannelBoth     = "BOTH"
)

// Send dispatches the message to the configured channels. With no channel
// configured it is a no-op. When both channels are configured, an error is
// returned only if both deliveries fail.
func Send(message string, cfg config.Config) error {
	channels := strings.ToUpper(cfg.MessageChannels)
	if channels == "" {
		return nil
	}

	var telegramErr, slackErr error

	if channels == ChannelTelegram || channels == ChannelBoth {
		telegramErr = sendTelegram(message, cfg)
	}

	if channels == ChannelSlack || channels == ChannelBoth {
		slackErr = sendSlack(message, cfg)
	}

	switch channels {
	case ChannelBoth:
		if telegramErr != nil && slackErr != nil {
			return telegramErr
		}
		return nil
	case ChannelTelegram:
		return telegramErr
	case ChannelSlack:
		return slackErr
	}
	return nil
}
