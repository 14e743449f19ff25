package bot

import (
	"io/ioutil"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codenewsio/codenews/model"
	"github.com/codenewsio/codenews/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFeedbackValue(t *testing.T) {
	action := Action{Value: EncodeFeedbackValue(model.SentimentPositive, 42)}
	sentiment, contentID, err := action.DecodeFeedbackValue()
	require.Nil(t, err)
	assert.Equal(t, model.SentimentPositive, sentiment)
	assert.Equal(t, int64(42), contentID)

	action = Action{Value: "negative_7"}
	sentiment, contentID, err = action.DecodeFeedbackValue()
	require.Nil(t, err)
	assert.Equal(t, model.SentimentNegative, sentiment)
	assert.Equal(t, int64(7), contentID)
}

func TestDecodeFeedbackValue_Malformed(t *testing.T) {
	for _, value := range []string{"", "positive", "positive_abc", "banana_12"} {
		action := Action{Value: value}
		_, _, err := action.DecodeFeedbackValue()
		assert.NotNil(t, err, "value %q should not decode", value)
	}
}

func TestParseRequestToInteractionPayload(t *testing.T) {
	raw := `{"type":"block_actions","response_url":"https://hooks.slack.com/actions/x","actions":[{"action_id":"feedback_positive_3","value":"positive_3"}]}`
	body := "payload=" + url.QueryEscape(raw)

	payload, err := parseRequestToInteractionPayload(ioutil.NopCloser(strings.NewReader(body)))
	require.Nil(t, err)

	require.Len(t, payload.Actions, 1)
	assert.Equal(t, "positive_3", payload.Actions[0].Value)
	assert.Equal(t, "https://hooks.slack.com/actions/x", payload.ResponseURL)
}

func TestParseRequestToInteractionPayload_NotSlackShaped(t *testing.T) {
	_, err := parseRequestToInteractionPayload(ioutil.NopCloser(strings.NewReader(`{"some":"json"}`)))
	assert.NotNil(t, err)
}

func TestRecordFeedback_LastWriteWins(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	content := model.Content{Url: "https://example.com/1", Title: "t", FetchedDate: time.Now().UTC()}
	require.Nil(t, db.Create(&content).Error)

	require.Nil(t, RecordFeedback(db, content.Id, model.SentimentPositive, ""))
	require.Nil(t, RecordFeedback(db, content.Id, model.SentimentNegative, "changed my mind"))

	var count int64
	db.Model(&model.Feedback{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var feedback model.Feedback
	require.Nil(t, db.Where("content_id = ?", content.Id).First(&feedback).Error)
	assert.Equal(t, model.SentimentNegative, feedback.Sentiment)
	assert.Equal(t, "changed my mind", feedback.Note)
}
