package feedback

import (
	"errors"
	"testing"
	"time"

	"github.com/codenewsio/codenews/config"
	"github.com/codenewsio/codenews/engine"
	"github.com/codenewsio/codenews/model"
	"github.com/codenewsio/codenews/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeQueueMessage and fakeQueueReader stand in for SQS in tests.
type fakeQueueMessage struct {
	body string
	err  error
}

func (m *fakeQueueMessage) Read() (string, error) {
	return m.body, m.err
}

type fakeQueueReader struct {
	messages []utils.MessageQueueMessage
	deleted  []utils.MessageQueueMessage
}

func (r *fakeQueueReader) ReceiveMessages(max int64) ([]utils.MessageQueueMessage, error) {
	if int64(len(r.messages)) <= max {
		msgs := r.messages
		r.messages = nil
		return msgs, nil
	}
	msgs := r.messages[:max]
	r.messages = r.messages[max:]
	return msgs, nil
}

func (r *fakeQueueReader) DeleteMessage(msg utils.MessageQueueMessage) error {
	r.deleted = append(r.deleted, msg)
	return nil
}

func newTestProcessor(t *testing.T) (*FeedbackMessageProcessor, *fakeQueueReader, *gorm.DB) {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	reader := &fakeQueueReader{}
	cfg := &config.AppConfig{LearningRate: 0.1, MinFeedbackCount: 5}
	return NewFeedbackMessageProcessor(reader, db, engine.NewEngine(db, cfg)), reader, db
}

func TestReadAndProcessMessages(t *testing.T) {
	processor, reader, db := newTestProcessor(t)

	content := model.Content{
		Url:         "https://example.com/1",
		Title:       "Kubernetes release",
		FetchedDate: time.Now().UTC(),
	}
	require.Nil(t, db.Create(&content).Error)

	reader.messages = []utils.MessageQueueMessage{
		&fakeQueueMessage{body: `{"content_id":1,"sentiment":"positive","note":"great"}`},
	}

	assert.Equal(t, 1, processor.ReadAndProcessMessages(10))

	// The vote is recorded and the weights moved.
	var feedback model.Feedback
	require.Nil(t, db.Where("content_id = ?", content.Id).First(&feedback).Error)
	assert.Equal(t, model.SentimentPositive, feedback.Sentiment)
	assert.Equal(t, "great", feedback.Note)

	var pref model.Preference
	require.Nil(t, db.Where("keyword = ?", "kubernetes").First(&pref).Error)
	assert.InDelta(t, 0.1, pref.Weight, 1e-9)

	// Processed messages are always deleted from the queue.
	assert.Len(t, reader.deleted, 1)
}

func TestReadAndProcessMessages_PoisonMessageDeleted(t *testing.T) {
	processor, reader, _ := newTestProcessor(t)

	reader.messages = []utils.MessageQueueMessage{
		&fakeQueueMessage{body: `not json`},
		&fakeQueueMessage{body: `{"content_id":0,"sentiment":"positive"}`},
		&fakeQueueMessage{body: `{"content_id":5,"sentiment":"banana"}`},
		&fakeQueueMessage{err: errors.New("read failure")},
	}

	assert.Equal(t, 0, processor.ReadAndProcessMessages(10))
	assert.Len(t, reader.deleted, 4)
}

func TestReadAndProcessMessages_TransientFailureLeavesMessageQueued(t *testing.T) {
	processor, reader, db := newTestProcessor(t)

	// A broken database is not the message's fault: it must stay on the queue
	// and come back after the visibility timeout.
	require.Nil(t, db.Migrator().DropTable(&model.Content{}))

	reader.messages = []utils.MessageQueueMessage{
		&fakeQueueMessage{body: `{"content_id":1,"sentiment":"positive"}`},
	}

	assert.Equal(t, 0, processor.ReadAndProcessMessages(10))
	assert.Empty(t, reader.deleted)
}

func TestProcessOneFeedbackMessage_UnknownContent(t *testing.T) {
	processor, _, db := newTestProcessor(t)

	// Feedback for unknown content records the vote but learning is a no-op.
	err := processor.ProcessOneFeedbackMessage(
		&fakeQueueMessage{body: `{"content_id":999,"sentiment":"positive"}`})
	assert.Nil(t, err)

	var count int64
	db.Model(&model.Preference{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
