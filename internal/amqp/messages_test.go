package amqp

import (
	"testing"
	"time"
)

func TestNewAlertMessage(t *testing.T) {
	msg := NewAlertMessage("Budget WARNING: Food", "<html></html>", true)

	if msg.Subject != "Budget WARNING: Food" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if !msg.HTML {
		t.Error("HTML = false, want true")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestAlertMessageJSON(t *testing.T) {
	msg := &AlertMessage{
		Subject:   "Daily Expense Reminder",
		Body:      "<p>log your expenses</p>",
		HTML:      true,
		Timestamp: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC),
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := AlertMessageFromJSON(data)
	if err != nil {
		t.Fatalf("AlertMessageFromJSON() error = %v", err)
	}

	if parsed.Subject != msg.Subject || parsed.Body != msg.Body || parsed.HTML != msg.HTML {
		t.Errorf("round trip = %+v, want %+v", parsed, msg)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestAlertMessageFromInvalidJSON(t *testing.T) {
	if _, err := AlertMessageFromJSON([]byte(`{"html": "yes"}`)); err == nil {
		t.Error("AlertMessageFromJSON() should fail on invalid payload")
	}
}
