package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/mq"
)

// EmailSender delivers a composed email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Worker consumes email jobs from the broker and delivers them. It runs in
// the worker process, fully decoupled from the API request path.
type Worker struct {
	queue    *mq.MQ
	sender   EmailSender
	resetURL string
	log      *logrus.Logger
}

// NewWorker constructs a Worker.
func NewWorker(queue *mq.MQ, sender EmailSender, resetURL string, log *logrus.Logger) *Worker {
	return &Worker{queue: queue, sender: sender, resetURL: resetURL, log: log}
}

// Run subscribes to the email channel and blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	return w.queue.Subscribe(ctx, Channel, w.handle)
}

func (w *Worker) handle(ctx context.Context, msg mq.Message) error {
	var job EmailJob
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		// Undecodable jobs would never succeed on redelivery; drop them.
		w.log.WithError(err).WithField("message_id", msg.ID).Error("decode email job")
		return nil
	}

	subject, body, err := w.compose(job)
	if err != nil {
		w.log.WithError(err).WithField("message_id", msg.ID).Error("compose email")
		return nil
	}

	if err := w.sender.Send(ctx, job.To, subject, body); err != nil {
		w.log.WithError(err).WithFields(logrus.Fields{
			"kind": job.Kind,
			"to":   job.To,
		}).Error("send email")
		return err
	}

	w.log.WithFields(logrus.Fields{"kind": job.Kind, "to": job.To}).Info("email sent")
	return nil
}

func (w *Worker) compose(job EmailJob) (subject, body string, err error) {
	switch job.Kind {
	case JobPasswordReset:
		link := fmt.Sprintf("%s?token=%s", w.resetURL, job.Token)
		subject = "Reset your password"
		body = fmt.Sprintf(
			"You requested a password reset.\r\n\r\nClick here to reset: %s\r\n\r\nThis link expires in 30 minutes.\r\n",
			link,
		)
	case JobTrainerWelcome:
		subject = "Welcome to EduTrack Platform"
		body = fmt.Sprintf(
			"Hello %s,\r\n\r\nYou have been registered as a trainer. Please log in using your email credentials.\r\n",
			job.Name,
		)
	default:
		return "", "", fmt.Errorf("unknown email job kind %q", job.Kind)
	}
	return subject, body, nil
}
