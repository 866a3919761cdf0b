package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewMailer_FallsBackToLogMailer(t *testing.T) {
	m := NewMailer(SMTPConfig{}, zap.NewNop())

	_, ok := m.(*logMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), Message{To: "a@example.com", Subject: "s", Text: "t"}))
}

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("LeaveSync <no-reply@leavesync.local>", Message{
		To:      "asha@example.com",
		Subject: "Leave Request APPROVED",
		Text:    "body",
	}))

	assert.True(t, strings.HasPrefix(raw, "From: LeaveSync <no-reply@leavesync.local>\r\n"))
	assert.Contains(t, raw, "To: asha@example.com\r\n")
	assert.Contains(t, raw, "Subject: Leave Request APPROVED\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nbody"))
}

func TestEnvelopeAddress(t *testing.T) {
	assert.Equal(t, "no-reply@leavesync.local", envelopeAddress("LeaveSync <no-reply@leavesync.local>"))
	assert.Equal(t, "ops@example.com", envelopeAddress(" ops@example.com "))
}

func TestTemplates(t *testing.T) {
	tpl := LeaveStatusUpdate("Asha", "rejected", "Meera")
	assert.Equal(t, "Leave Request REJECTED", tpl.Subject)
	assert.Equal(t, "Hello Asha,\n\nYour leave request has been rejected by Meera.\n\n"+
		"Please check your dashboard for more details.\n\nBest,\nLeaveSync Team", tpl.Text)

	assert.Equal(t, "sick", displayLeaveType("sick"))
	assert.Equal(t, "work from home", displayLeaveType("work_from_home"))
}
