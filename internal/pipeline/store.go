package pipeline

import (
	"context"

	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/repository"
)

// RepositoryStore adapts the gorm repositories to the pipeline Store.
type RepositoryStore struct {
	repo *repository.Repository
}

func NewRepositoryStore(repo *repository.Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

func (s *RepositoryStore) GetProfileByUserID(ctx context.Context, userID string) (*model.CompanyProfile, error) {
	return s.repo.Profile.GetByUserId(ctx, nil, userID)
}

func (s *RepositoryStore) ListDocuments(ctx context.Context, profileID string) ([]model.Document, error) {
	return s.repo.Document.ListByProfile(ctx, nil, profileID, "")
}

func (s *RepositoryStore) GetRFP(ctx context.Context, profileID, rfpID string) (*model.RFPUpload, error) {
	return s.repo.RFP.GetForProfile(ctx, nil, profileID, rfpID)
}

func (s *RepositoryStore) FindRFPByFileName(ctx context.Context, profileID, fileName string) (*model.RFPUpload, error) {
	return s.repo.RFP.GetByFileName(ctx, nil, profileID, fileName)
}

func (s *RepositoryStore) CreateRFP(ctx context.Context, rfp *model.RFPUpload) error {
	return s.repo.RFP.Create(ctx, nil, rfp)
}

func (s *RepositoryStore) SaveRFP(ctx context.Context, rfp *model.RFPUpload) error {
	return s.repo.RFP.Save(ctx, nil, rfp)
}

func (s *RepositoryStore) CreateProposal(ctx context.Context, proposal *model.Proposal) error {
	_, err := s.repo.Proposal.Create(ctx, nil, proposal)
	return err
}
