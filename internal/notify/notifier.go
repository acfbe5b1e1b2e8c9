package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/mq"
)

// Channel is the broker channel carrying outbound email jobs.
const Channel = "notifications.email"

// Job kinds understood by the worker.
const (
	JobPasswordReset  = "password_reset"
	JobTrainerWelcome = "trainer_welcome"
)

const publishTimeout = 10 * time.Second

// EmailJob is the unit of work handed to the background delivery channel.
type EmailJob struct {
	Kind  string `json:"kind"`
	To    string `json:"to"`
	Name  string `json:"name,omitempty"`
	Token string `json:"token,omitempty"`
}

// Notifier publishes email jobs to the broker without awaiting delivery.
// The request path never blocks on, and never fails because of, the
// notification outcome; publish errors are logged and dropped.
type Notifier struct {
	queue *mq.MQ
	log   *logrus.Logger
}

// NewNotifier constructs a Notifier over the given queue.
func NewNotifier(queue *mq.MQ, log *logrus.Logger) *Notifier {
	return &Notifier{queue: queue, log: log}
}

// PasswordReset enqueues a reset-link email for the user.
func (n *Notifier) PasswordReset(email, token string) {
	n.publish(EmailJob{Kind: JobPasswordReset, To: email, Token: token})
}

// TrainerWelcome enqueues a welcome email for a newly registered trainer.
func (n *Notifier) TrainerWelcome(email, name string) {
	n.publish(EmailJob{Kind: JobTrainerWelcome, To: email, Name: name})
}

func (n *Notifier) publish(job EmailJob) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		data, err := json.Marshal(job)
		if err != nil {
			n.log.WithError(err).WithField("kind", job.Kind).Error("marshal email job")
			return
		}
		if _, err := n.queue.Publish(ctx, Channel, data, map[string]string{"kind": job.Kind}); err != nil {
			n.log.WithError(err).WithFields(logrus.Fields{
				"kind": job.Kind,
				"to":   job.To,
			}).Error("publish email job")
		}
	}()
}
