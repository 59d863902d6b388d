package notifier

import (
	"github.com/SeakMengs/AutoRFP/internal/mailer"
	"github.com/SeakMengs/AutoRFP/internal/queue"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"go.uber.org/zap"
)

// Publisher hands a mail job to an out-of-process consumer.
type Publisher interface {
	PublishMailJob(job queue.MailJobPayload) error
}

// Notifier sends best-effort email. Failures are logged and never reach the caller.
type Notifier struct {
	mailer    mailer.Client
	publisher Publisher
	logger    *zap.SugaredLogger
}

// New returns a Notifier that publishes to the queue when publisher is set and otherwise
// sends on a recovered goroutine.
func New(client mailer.Client, publisher Publisher, logger *zap.SugaredLogger) *Notifier {
	if logger == nil {
		logger = util.NewLogger()
	}

	return &Notifier{mailer: client, publisher: publisher, logger: logger}
}

func (n *Notifier) Notify(templateFile mailer.MailTemplateFile, toEmail string, data any) {
	if n == nil {
		return
	}

	if n.publisher != nil {
		job, err := queue.NewMailJobPayload(toEmail, templateFile, data)
		if err == nil {
			err = n.publisher.PublishMailJob(job)
		}
		if err == nil {
			return
		}
		n.logger.Warnw("Failed to publish mail job, sending inline", "toEmail", toEmail, "templateFile", templateFile, "error", err)
	}

	if n.mailer == nil {
		n.logger.Warnw("No mailer configured, dropping email", "toEmail", toEmail, "templateFile", templateFile)
		return
	}

	util.SafeGo(n.logger, func() {
		if _, err := n.mailer.Send(templateFile, toEmail, data); err != nil {
			n.logger.Errorw("Failed to send email", "toEmail", toEmail, "templateFile", templateFile, "error", err)
		}
	})
}
