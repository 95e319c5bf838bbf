package mailservice

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendWelcomeEmail(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMailer := new(MockMailer)
	mockLogger := new(MockLogger)

	expectedArgs := []interface{}{slog.Attr{Key: "email", Value: slog.StringValue("jake@example.com")}}
	mockLogger.On("Info", "welcome email sent", expectedArgs).Return()
	mockLogger.On("Info", "stopping SendWelcomeEmail due to context cancellation", mock.Anything).Return().Maybe()

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:     mockMC,
		m:      mockMailer,
		logger: mockLogger,
		ctx:    ctx,
		cancel: cancel,
	}

	s.SendWelcomeEmail()

	time.Sleep(1 * time.Second)

	assert.True(t, mockMailer.IsCalled(), "expected an email to be sent")
	assert.Equal(t, "jake@example.com", mockMailer.GetEmail(), "expected email to be sent to the recipient")

	mockLogger.AssertExpectations(t)

	t.Cleanup(func() {
		s.Close()
	})
}
