package notify

import (
	"bytes"
	"encoding/json"
	"net/http"

	"defectpred/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type slackMessage struct {
	Text string `json:"text"`
}

func sendSlack(message string, cfg config.Config) error {
	if cfg.SlackWebhookURL == "" {
		return errors.New("slack webhook URL is not configured")
	}

	payload, err := json.Marshal(slackMessage{Text: message})
	if err != nil {
		return errors.Wrap(err, "failed to marshal slack message")
	}

	resp, err := http.Post(cfg.SlackWebhookURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return errors.Wrap(err, "failed to send Slack notification")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("slack API returned status code %d", resp.StatusCode)
	}

	log.Info().Msg("sent Slack notification")
	return nil
}
