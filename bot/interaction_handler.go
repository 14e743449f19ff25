package bot

// Handles user interactions from the slack client (button clicks in message
// blocks): https://api.slack.com/interactivity/handling

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codenewsio/codenews/engine"
	"github.com/codenewsio/codenews/model"
	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// slack go package has an outdated payload struct (action is a list, message
// is not a struct etc...), so we redefine the parts we read
// gopkg: https://github.com/slack-go/slack/blob/4981f65787e6ea296375fe3dbcbb882c890ce66e/interactions.go#L34-L69
// real slack payload: https://api.slack.com/reference/interaction-payloads/block-actions#examples
type ActionText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji"`
}

type Action struct {
	ActionId string     `json:"action_id"`
	Value    string     `json:"value"`
	Text     ActionText `json:"text"`
}

// DecodeFeedbackValue is the inverse of EncodeFeedbackValue.
func (a Action) DecodeFeedbackValue() (sentiment string, contentID int64, err error) {
	idx := strings.LastIndex(a.Value, "_")
	if idx < 0 {
		return "", 0, fmt.Errorf("malformed feedback value: %s", a.Value)
	}

	sentiment = a.Value[:idx]
	if !model.ValidSentiment(sentiment) {
		return "", 0, fmt.Errorf("unknown sentiment in feedback value: %s", a.Value)
	}

	contentID, err = strconv.ParseInt(a.Value[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed content id in feedback value: %s", a.Value)
	}
	return sentiment, contentID, nil
}

type SlackInteractionPayload struct {
	Type        slack.InteractionType `json:"type"`
	User        slack.User            `json:"user"`
	ResponseURL string                `json:"response_url"`
	Actions     []Action              `json:"actions"`
}

func parseRequestToInteractionPayload(body io.ReadCloser) (*SlackInteractionPayload, error) {
	bodybytes, err := ioutil.ReadAll(body)
	if err != nil {
		return nil, err
	}

	payload := SlackInteractionPayload{}
	const prefix = "payload="
	// https://api.slack.com/interactivity/handling#payloads
	// Slack sends the interaction post in a weird format: a "payload" param in
	// the request body with the json url-escaped, not a normal json body.
	if !strings.HasPrefix(string(bodybytes), prefix) {
		return nil, fmt.Errorf("unsupported request")
	}

	unescaped, err := url.QueryUnescape(string(bodybytes[len(prefix):]))
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal([]byte(unescaped), &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// RecordFeedback stores one feedback event. A repeated vote on the same
// content overwrites the previous one, last write wins.
func RecordFeedback(db *gorm.DB, contentID int64, sentiment string, note string) error {
	feedback := model.Feedback{
		ContentID:    contentID,
		Sentiment:    sentiment,
		Note:         note,
		FeedbackDate: time.Now().UTC(),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"sentiment", "note", "feedback_date"}),
	}).Create(&feedback).Error
}

func InteractionHandler(db *gorm.DB, e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := parseRequestToInteractionPayload(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format"})
			return
		}

		// https://api.slack.com/interactivity/handling#acknowledgment_response
		// Slack requires acknowledging a valid interaction payload immediately.
		c.JSON(http.StatusOK, gin.H{"ok": true})

		if len(payload.Actions) == 0 {
			Logger.Log.Errorln("invalid payload without any action", payload)
			return
		}

		action := payload.Actions[0]
		sentiment, contentID, err := action.DecodeFeedbackValue()
		if err != nil {
			Logger.Log.Errorf("fail to decode feedback action: %v", err)
			return
		}

		if err := RecordFeedback(db, contentID, sentiment, ""); err != nil {
			Logger.Log.Errorf("fail to record feedback for content %d: %v", contentID, err)
			return
		}

		if err := e.ApplyFeedback(contentID, sentiment); err != nil {
			Logger.Log.Errorf("fail to apply feedback for content %d: %v", contentID, err)
			return
		}

		responseText := "Teşekkürler, geri bildiriminiz kaydedildi 👍"
		if sentiment == model.SentimentNegative {
			responseText = "Anlaşıldı, benzer içerikleri daha az göstereceğiz 👎"
		}

		webhookMsg := &slack.WebhookMessage{
			Text:            responseText,
			ReplaceOriginal: false,
		}
		slack.PostWebhook(payload.ResponseURL, webhookMsg)
	}
}
