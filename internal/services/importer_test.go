package services

import (
	"context"
	"testing"

	"github.com/edutrack/apiserver/internal/auth"
	"github.com/edutrack/apiserver/types"
)

const validCSV = `name,email,role,mobile,batch_id
Alice Admin,alice@x.io,center_admin,111,b1
Tom Trainer,tom@x.io,trainer,222,b1
Sam Student,sam@x.io,student,,b2
`

func newImportFixture(t *testing.T) (*ImportService, *memUserRepo, *recordingNotifier) {
	t.Helper()
	repo := newMemUserRepo()
	notifier := &recordingNotifier{}
	svc := NewImportService(repo, auth.NewHasher(4), notifier, nil, testLogger())
	return svc, repo, notifier
}

func TestImportUsers(t *testing.T) {
	svc, repo, notifier := newImportFixture(t)

	result, err := svc.ImportUsers(context.Background(), "users.csv", []byte(validCSV))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.JobID == "" {
		t.Fatalf("expected a job id")
	}
	if len(result.Imported) != 3 {
		t.Fatalf("expected 3 imported, got %v", result.Imported)
	}

	trainer, err := repo.GetByEmail(context.Background(), "tom@x.io")
	if err != nil {
		t.Fatalf("fetch trainer: %v", err)
	}
	if trainer.Role != types.RoleTrainer || !trainer.IsActive {
		t.Fatalf("unexpected trainer record: %+v", trainer)
	}
	// Initial password is the local part of the email.
	if !auth.NewHasher(4).Verify("tom", trainer.PasswordHash) {
		t.Fatalf("expected initial password derived from email local part")
	}

	if len(notifier.welcomes) != 1 || notifier.welcomes[0] != "tom@x.io" {
		t.Fatalf("expected one trainer welcome, got %v", notifier.welcomes)
	}
}

func TestImportUsersUpsertsByEmail(t *testing.T) {
	svc, repo, _ := newImportFixture(t)
	existing := seedUser(t, repo, "sam@x.io", "oldpw", types.RoleTrainer, false)

	if _, err := svc.ImportUsers(context.Background(), "users.csv", []byte(validCSV)); err != nil {
		t.Fatalf("import: %v", err)
	}

	updated, err := repo.GetByID(context.Background(), existing.ID)
	if err != nil {
		t.Fatalf("fetch updated: %v", err)
	}
	if updated.Role != types.RoleStudent {
		t.Fatalf("expected role refreshed to student, got %q", updated.Role)
	}
	if !updated.IsActive {
		t.Fatalf("expected imported user forced active")
	}
}

func TestImportUsersRejectsBadHeader(t *testing.T) {
	svc, _, _ := newImportFixture(t)

	_, err := svc.ImportUsers(context.Background(), "users.csv", []byte("foo,bar\n1,2\n"))
	if err == nil {
		t.Fatalf("expected header error")
	}
}

func TestImportUsersRejectsInvalidRole(t *testing.T) {
	svc, repo, _ := newImportFixture(t)

	csv := "name,email,role,mobile,batch_id\nEve,eve@x.io,overlord,333,b9\n"
	if _, err := svc.ImportUsers(context.Background(), "users.csv", []byte(csv)); err == nil {
		t.Fatalf("expected invalid role error")
	}
	if _, err := repo.GetByEmail(context.Background(), "eve@x.io"); err == nil {
		t.Fatalf("row with invalid role must not be persisted")
	}
}
