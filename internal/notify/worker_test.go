package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/mq"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (s *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func jobMessage(t *testing.T, job EmailJob) mq.Message {
	t.Helper()
	data, err := json.Marshal(job)
	if err != nil {
		t.Fatalf("marshal job: %v", err)
	}
	return mq.Message{ID: "m1", Data: data}
}

func TestWorkerHandlePasswordReset(t *testing.T) {
	sender := &fakeSender{}
	worker := NewWorker(nil, sender, "https://app.example.com/reset-password", testLogger())

	msg := jobMessage(t, EmailJob{Kind: JobPasswordReset, To: "u1@x.io", Token: "tok123"})
	if err := worker.handle(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}
	mail := sender.sent[0]
	if mail.to != "u1@x.io" {
		t.Fatalf("to = %q", mail.to)
	}
	if mail.subject != "Reset your password" {
		t.Fatalf("subject = %q", mail.subject)
	}
	if !strings.Contains(mail.body, "https://app.example.com/reset-password?token=tok123") {
		t.Fatalf("body missing reset link: %q", mail.body)
	}
}

func TestWorkerHandleTrainerWelcome(t *testing.T) {
	sender := &fakeSender{}
	worker := NewWorker(nil, sender, "https://app.example.com/reset-password", testLogger())

	msg := jobMessage(t, EmailJob{Kind: JobTrainerWelcome, To: "tom@x.io", Name: "Tom"})
	if err := worker.handle(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}
	mail := sender.sent[0]
	if mail.subject != "Welcome to EduTrack Platform" {
		t.Fatalf("subject = %q", mail.subject)
	}
	if !strings.Contains(mail.body, "Hello Tom,") {
		t.Fatalf("body missing greeting: %q", mail.body)
	}
}

func TestWorkerHandleDropsBadJobs(t *testing.T) {
	sender := &fakeSender{}
	worker := NewWorker(nil, sender, "https://app.example.com/reset-password", testLogger())

	// Undecodable payloads and unknown kinds are dropped, not redelivered.
	if err := worker.handle(context.Background(), mq.Message{ID: "m1", Data: []byte("not json")}); err != nil {
		t.Fatalf("undecodable job: %v", err)
	}
	msg := jobMessage(t, EmailJob{Kind: "carrier_pigeon", To: "u1@x.io"})
	if err := worker.handle(context.Background(), msg); err != nil {
		t.Fatalf("unknown kind: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no emails, got %d", len(sender.sent))
	}
}

func TestWorkerHandleSendFailure(t *testing.T) {
	sendErr := errors.New("smtp down")
	worker := NewWorker(nil, &fakeSender{err: sendErr}, "https://app.example.com/reset-password", testLogger())

	msg := jobMessage(t, EmailJob{Kind: JobPasswordReset, To: "u1@x.io", Token: "tok"})
	if err := worker.handle(context.Background(), msg); !errors.Is(err, sendErr) {
		t.Fatalf("expected send error surfaced for redelivery, got %v", err)
	}
}
