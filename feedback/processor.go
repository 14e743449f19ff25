package feedback

import (
	"encoding/json"

	"github.com/codenewsio/codenews/bot"
	"github.com/codenewsio/codenews/engine"
	"github.com/codenewsio/codenews/model"
	"github.com/codenewsio/codenews/utils"
	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FeedbackMessage is the queue wire format for one feedback event, produced by
// external clients (Telegram relay, CLI, etc).
type FeedbackMessage struct {
	ContentID int64  `json:"content_id"`
	Sentiment string `json:"sentiment"`
	Note      string `json:"note"`
}

// FeedbackMessageProcessor drains the feedback queue and folds each event into
// the preference store. The reader knows how to get messages from the queue,
// the processor knows what to do with them.
type FeedbackMessageProcessor struct {
	Reader utils.MessageQueueReader
	DB     *gorm.DB
	Engine *engine.Engine
}

func NewFeedbackMessageProcessor(reader utils.MessageQueueReader, db *gorm.DB, e *engine.Engine) *FeedbackMessageProcessor {
	return &FeedbackMessageProcessor{
		Reader: reader,
		DB:     db,
		Engine: e,
	}
}

// poisonMessageError marks a message that can never be processed no matter how
// often it is redelivered. Poison messages are deleted instead of retried.
type poisonMessageError struct {
	err error
}

func (e poisonMessageError) Error() string {
	return e.err.Error()
}

// ReadAndProcessMessages pulls up to batchSize messages and processes them in
// arrival order. A poison message is deleted rather than blocking the queue; a
// transient processing failure leaves the message on the queue so it is
// redelivered after the visibility timeout. Returns the number processed
// successfully.
func (p *FeedbackMessageProcessor) ReadAndProcessMessages(batchSize int64) int {
	msgs, err := p.Reader.ReceiveMessages(batchSize)

	successCount := 0
	if err != nil {
		Logger.Log.Error("fail to read feedback messages from queue: ", err)
		return successCount
	}

	for _, msg := range msgs {
		err := p.ProcessOneFeedbackMessage(msg)
		switch err.(type) {
		case nil:
			successCount++
		case poisonMessageError:
			Logger.Log.Errorf("dropping undecodable feedback message: %v", err)
		default:
			Logger.Log.Errorf("fail to process one feedback message, leaving it queued: %v", err)
			continue
		}
		if err := p.Reader.DeleteMessage(msg); err != nil {
			Logger.Log.Errorf("fail to delete message from queue: %v", err)
		}
	}
	return successCount
}

// ProcessOneFeedbackMessage decodes and applies a single feedback event:
// record the vote, then update the learned weights.
func (p *FeedbackMessageProcessor) ProcessOneFeedbackMessage(msg utils.MessageQueueMessage) error {
	decoded, err := decodeFeedbackMessage(msg)
	if err != nil {
		return poisonMessageError{err}
	}

	if err := bot.RecordFeedback(p.DB, decoded.ContentID, decoded.Sentiment, decoded.Note); err != nil {
		return errors.Wrap(err, "fail to record feedback")
	}
	return p.Engine.ApplyFeedback(decoded.ContentID, decoded.Sentiment)
}

func decodeFeedbackMessage(msg utils.MessageQueueMessage) (*FeedbackMessage, error) {
	str, err := msg.Read()
	if err != nil {
		return nil, err
	}

	decoded := &FeedbackMessage{}
	if err := json.Unmarshal([]byte(str), decoded); err != nil {
		return nil, errors.Wrap(err, "fail to decode feedback message")
	}

	if decoded.ContentID <= 0 {
		return nil, errors.Errorf("invalid content id in feedback message: %d", decoded.ContentID)
	}
	if !model.ValidSentiment(decoded.Sentiment) {
		return nil, errors.Errorf("invalid sentiment in feedback message: %s", decoded.Sentiment)
	}
	return decoded, nil
}
