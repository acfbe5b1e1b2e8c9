package services

import (
	"context"

	"github.com/edutrack/apiserver/types"
)

// InstituteRepository defines persistence operations for institutes.
type InstituteRepository interface {
	GetByID(ctx context.Context, id int) (types.Institute, error)
	List(ctx context.Context) ([]types.Institute, error)
	Create(ctx context.Context, institute types.Institute) (types.Institute, error)
	Update(ctx context.Context, institute types.Institute) (types.Institute, error)
	Delete(ctx context.Context, id int) error
}

// InstituteService encapsulates institute use-cases.
type InstituteService struct {
	repo InstituteRepository
}

func NewInstituteService(repo InstituteRepository) *InstituteService {
	return &InstituteService{repo: repo}
}

func (s *InstituteService) GetByID(ctx context.Context, id int) (types.Institute, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *InstituteService) List(ctx context.Context) ([]types.Institute, error) {
	return s.repo.List(ctx)
}

func (s *InstituteService) Create(ctx context.Context, institute types.Institute) (types.Institute, error) {
	return s.repo.Create(ctx, institute)
}

func (s *InstituteService) Update(ctx context.Context, institute types.Institute) (types.Institute, error) {
	return s.repo.Update(ctx, institute)
}

func (s *InstituteService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
