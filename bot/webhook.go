package bot

import (
	"fmt"
	"os"

	"github.com/codenewsio/codenews/model"
	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/slack-go/slack"
)

const (
	PositiveButtonText = "👍 İlginç"
	NegativeButtonText = "👎 İlgisiz"
)

// Notifier pushes one content notification to readers. Implementations own
// delivery details; callers only see success or failure.
type Notifier interface {
	PushContent(content *model.Content, summary string) error
}

// SlackNotifier delivers notifications through an incoming webhook, one
// message per content item with feedback buttons attached.
type SlackNotifier struct {
	WebhookUrl string
}

func NewSlackNotifier() *SlackNotifier {
	return &SlackNotifier{WebhookUrl: os.Getenv("SLACK_WEBHOOK_URL")}
}

func categoryEmoji(category string) string {
	switch category {
	case "ai":
		return "🤖"
	case "software_dev":
		return "💻"
	}
	return "🗞️"
}

// EncodeFeedbackValue packs the sentiment and content id into a button value
// so the interaction handler can recover both from one string.
func EncodeFeedbackValue(sentiment string, contentID int64) string {
	return fmt.Sprintf("%s_%d", sentiment, contentID)
}

func buildTitleBlock(content *model.Content) slack.Block {
	return slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf("%s *<%s|%s>*", categoryEmoji(content.Category), content.Url, content.Title),
			false, false),
		nil, nil)
}

func buildSummaryBlock(summary string, feedName string) slack.Block {
	return slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf("%s\n_%s_", summary, feedName),
			false, false))
}

func buildFeedbackBlock(contentID int64) slack.Block {
	positive := slack.NewButtonBlockElement(
		fmt.Sprintf("feedback_positive_%d", contentID),
		EncodeFeedbackValue(model.SentimentPositive, contentID),
		slack.NewTextBlockObject("plain_text", PositiveButtonText, true, false))
	negative := slack.NewButtonBlockElement(
		fmt.Sprintf("feedback_negative_%d", contentID),
		EncodeFeedbackValue(model.SentimentNegative, contentID),
		slack.NewTextBlockObject("plain_text", NegativeButtonText, true, false))
	return slack.NewActionBlock("", positive, negative)
}

// AnnounceDigest posts the published digest link to the channel.
func (n *SlackNotifier) AnnounceDigest(title string, url string) error {
	webhookMsg := &slack.WebhookMessage{
		Text: fmt.Sprintf("📰 *<%s|%s>* yayınlandı!", url, title),
	}
	err := slack.PostWebhook(n.WebhookUrl, webhookMsg)
	if err != nil {
		Logger.Log.Error(err)
	}
	return err
}

// PushContent is one webhook post per item: title link, summary context and
// the two feedback buttons.
func (n *SlackNotifier) PushContent(content *model.Content, summary string) error {
	blocks := []slack.Block{
		buildTitleBlock(content),
		buildSummaryBlock(summary, content.FeedName),
		buildFeedbackBlock(content.Id),
	}

	webhookMsg := &slack.WebhookMessage{
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
	err := slack.PostWebhook(n.WebhookUrl, webhookMsg)
	if err != nil {
		Logger.Log.Error(err)
	}
	return err
}
