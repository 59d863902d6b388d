package notifier

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/mailer"
	"github.com/SeakMengs/AutoRFP/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	template mailer.MailTemplateFile
	to       string
}

type chanMailer struct {
	sent chan sentMail
	err  error
}

func (c *chanMailer) Send(templateFile mailer.MailTemplateFile, toEmail string, data any) (int, error) {
	c.sent <- sentMail{template: templateFile, to: toEmail}
	if c.err != nil {
		return -1, c.err
	}
	return http.StatusAccepted, nil
}

type recordingPublisher struct {
	jobs []queue.MailJobPayload
	err  error
}

func (r *recordingPublisher) PublishMailJob(job queue.MailJobPayload) error {
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func waitForMail(t *testing.T, c *chanMailer) sentMail {
	t.Helper()
	select {
	case m := <-c.sent:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("mail was not sent")
		return sentMail{}
	}
}

func TestNotifySendsInline(t *testing.T) {
	m := &chanMailer{sent: make(chan sentMail, 1)}
	n := New(m, nil, nil)

	n.Notify(mailer.TemplateLeadWelcome, "jane@example.com", mailer.LeadWelcomeData{LeadName: "Jane"})

	got := waitForMail(t, m)
	assert.Equal(t, "jane@example.com", got.to)
	assert.Equal(t, mailer.TemplateLeadWelcome, got.template)
}

func TestNotifySwallowsSendErrors(t *testing.T) {
	m := &chanMailer{sent: make(chan sentMail, 1), err: errors.New("smtp down")}
	n := New(m, nil, nil)

	assert.NotPanics(t, func() {
		n.Notify(mailer.TemplatePasswordReset, "a@b.co", mailer.PasswordResetData{})
	})
	waitForMail(t, m)
}

func TestNotifyPublishesWhenQueueConfigured(t *testing.T) {
	m := &chanMailer{sent: make(chan sentMail, 1)}
	p := &recordingPublisher{}
	n := New(m, p, nil)

	n.Notify(mailer.TemplateLeadNotification, "owner@acme.io", mailer.LeadNotificationData{LeadName: "Jane"})

	require.Len(t, p.jobs, 1)
	assert.Equal(t, "owner@acme.io", p.jobs[0].ToEmail)
	assert.Empty(t, m.sent)
}

func TestNotifyFallsBackWhenPublishFails(t *testing.T) {
	m := &chanMailer{sent: make(chan sentMail, 1)}
	n := New(m, &recordingPublisher{err: errors.New("channel closed")}, nil)

	n.Notify(mailer.TemplateLeadNotification, "owner@acme.io", mailer.LeadNotificationData{})

	assert.Equal(t, "owner@acme.io", waitForMail(t, m).to)
}

func TestNilNotifierIsNoop(t *testing.T) {
	var n *Notifier
	assert.NotPanics(t, func() {
		n.Notify(mailer.TemplateLeadWelcome, "x@y.z", nil)
	})
}
