package amqp

import (
	"encoding/json"
	"time"
)

// AlertMessage carries one formatted notification from the alert engine to
// whatever delivery sink consumes the queue. The engine decides what to
// send; the consumer decides how it reaches the user.
type AlertMessage struct {
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	HTML      bool      `json:"html"`
	Timestamp time.Time `json:"timestamp"`
}

func NewAlertMessage(subject, body string, html bool) *AlertMessage {
	return &AlertMessage{
		Subject:   subject,
		Body:      body,
		HTML:      html,
		Timestamp: time.Now(),
	}
}

func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
