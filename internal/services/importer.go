package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/auth"
	"github.com/edutrack/apiserver/internal/storage"
	"github.com/edutrack/apiserver/types"
)

var importHeader = []string{"name", "email", "role", "mobile", "batch_id"}

// ImportResult summarizes a bulk user import.
type ImportResult struct {
	JobID    string   `json:"job_id"`
	Imported []string `json:"imported"`
}

// ImportService ingests user spreadsheets: each row is upserted by email
// with a derived initial password, and the raw upload is archived to object
// storage for audit.
type ImportService struct {
	users    UserRepository
	hasher   *auth.Hasher
	notifier Notifier
	archive  *storage.Storage
	log      *logrus.Logger
}

// NewImportService constructs an ImportService. The archive may be nil when
// no object storage is configured.
func NewImportService(
	users UserRepository,
	hasher *auth.Hasher,
	notifier Notifier,
	archive *storage.Storage,
	log *logrus.Logger,
) *ImportService {
	return &ImportService{
		users:    users,
		hasher:   hasher,
		notifier: notifier,
		archive:  archive,
		log:      log,
	}
}

// ImportUsers parses a CSV upload (columns: name,email,role,mobile,batch_id)
// and upserts each row by email. Imported users are forced active and get an
// initial password derived from the local part of their email, matching the
// onboarding flow where users log in once and reset it. Trainer rows trigger
// a welcome notification.
func (s *ImportService) ImportUsers(ctx context.Context, filename string, data []byte) (ImportResult, error) {
	jobID := uuid.NewString()
	s.archiveUpload(ctx, jobID, filename, data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("read header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{JobID: jobID, Imported: []string{}}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ImportResult{}, fmt.Errorf("line %d: %w", line, err)
		}

		user, err := s.rowToUser(record)
		if err != nil {
			return ImportResult{}, fmt.Errorf("line %d: %w", line, err)
		}

		saved, err := s.users.UpsertByEmail(ctx, user)
		if err != nil {
			return ImportResult{}, fmt.Errorf("line %d: %w", line, err)
		}
		if saved.Role == types.RoleTrainer {
			s.notifier.TrainerWelcome(saved.Email, saved.Name)
		}
		result.Imported = append(result.Imported, saved.Email)
	}

	s.log.WithFields(logrus.Fields{
		"job_id": jobID,
		"count":  len(result.Imported),
	}).Info("user import complete")
	return result, nil
}

func (s *ImportService) rowToUser(record []string) (types.User, error) {
	if len(record) != len(importHeader) {
		return types.User{}, fmt.Errorf("expected %d columns, got %d", len(importHeader), len(record))
	}

	name := strings.TrimSpace(record[0])
	email := strings.TrimSpace(record[1])
	if name == "" || email == "" {
		return types.User{}, fmt.Errorf("name and email are required")
	}

	role, err := types.ParseRole(strings.TrimSpace(record[2]))
	if err != nil {
		return types.User{}, err
	}

	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return types.User{}, fmt.Errorf("invalid email %q", email)
	}
	hash, err := s.hasher.Hash(local)
	if err != nil {
		return types.User{}, err
	}

	return types.User{
		Name:         name,
		Email:        email,
		Role:         role,
		Mobile:       strings.TrimSpace(record[3]),
		BatchID:      strings.TrimSpace(record[4]),
		IsActive:     true,
		PasswordHash: hash,
	}, nil
}

func (s *ImportService) archiveUpload(ctx context.Context, jobID, filename string, data []byte) {
	if s.archive == nil {
		return
	}
	key := path.Join("imports", jobID, path.Base(filename))
	err := s.archive.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "text/csv")
	if err != nil {
		// The import itself still proceeds; the archive is best effort.
		s.log.WithError(err).WithField("key", key).Warn("archive import upload")
		return
	}
	s.log.WithField("key", key).Info("import upload archived")
}

func validateHeader(header []string) error {
	if len(header) != len(importHeader) {
		return fmt.Errorf("expected header %v", importHeader)
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), importHeader[i]) {
			return fmt.Errorf("expected header %v", importHeader)
		}
	}
	return nil
}
