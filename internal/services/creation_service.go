package services

import (
	"errors"
	"fmt"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"gorm.io/gorm"
)

var ErrCreationNotFound = errors.New("creation not found")

// CreationService keeps receipts of mock token and NFT creations
type CreationService interface {
	RecordCreation(record *models.CreationRecord) error
	GetCreation(id string) (*models.CreationRecord, error)
	ListCreations(kind models.CreationKind) ([]models.CreationRecord, error)
}

type creationService struct {
	db *gorm.DB
}

func NewCreationService(db *gorm.DB) CreationService {
	return &creationService{db: db}
}

func (s *creationService) RecordCreation(record *models.CreationRecord) error {
	if record.Kind == models.CreationKindBlink {
		return fmt.Errorf("blink creations are not recorded")
	}
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to record creation: %w", err)
	}
	return nil
}

func (s *creationService) GetCreation(id string) (*models.CreationRecord, error) {
	var record models.CreationRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCreationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get creation: %w", err)
	}
	return &record, nil
}

// ListCreations returns the receipts of kind, newest first. An empty kind lists all.
func (s *creationService) ListCreations(kind models.CreationKind) ([]models.CreationRecord, error) {
	var records []models.CreationRecord
	query := s.db.Order("created_at desc")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list creations: %w", err)
	}
	return records, nil
}
