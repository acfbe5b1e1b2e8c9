package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edutrack/apiserver/internal/store"
	"github.com/edutrack/apiserver/types"
)

func TestUserServiceCreateNotifiesTrainers(t *testing.T) {
	repo := newMemUserRepo()
	notifier := &recordingNotifier{}
	svc := NewUserService(repo, notifier)

	if _, err := svc.Create(context.Background(), types.User{
		Name: "Tom", Email: "tom@x.io", Role: types.RoleTrainer, IsActive: true,
	}); err != nil {
		t.Fatalf("create trainer: %v", err)
	}
	if _, err := svc.Create(context.Background(), types.User{
		Name: "Sam", Email: "sam@x.io", Role: types.RoleStudent, IsActive: true,
	}); err != nil {
		t.Fatalf("create student: %v", err)
	}

	if len(notifier.welcomes) != 1 || notifier.welcomes[0] != "tom@x.io" {
		t.Fatalf("expected welcome only for the trainer, got %v", notifier.welcomes)
	}
}

func TestUserServiceCreateDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, &recordingNotifier{})

	user := types.User{Name: "A", Email: "a@x.io", Role: types.RoleStudent}
	if _, err := svc.Create(context.Background(), user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), user); !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}
