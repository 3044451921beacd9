package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/stretchr/testify/suite"
)

type CreationServiceTestSuite struct {
	suite.Suite
	dbService       services.DBService
	creationService services.CreationService
}

func (s *CreationServiceTestSuite) SetupSuite() {
	db, err := services.NewSqliteDBService(":memory:")
	s.Require().NoError(err)
	s.dbService = db
	s.creationService = services.NewCreationService(db.GetDB())
}

func (s *CreationServiceTestSuite) TearDownSuite() {
	if s.dbService != nil {
		s.dbService.Close()
	}
}

func (s *CreationServiceTestSuite) SetupTest() {
	s.dbService.GetDB().Where("1 = 1").Delete(&models.CreationRecord{})
}

func (s *CreationServiceTestSuite) newRecord(kind models.CreationKind, name string) *models.CreationRecord {
	return &models.CreationRecord{
		ID:      uuid.New().String(),
		Kind:    kind,
		Name:    name,
		Address: "mock-" + name,
		Payload: models.JSON{"name": name, "decimals": float64(9)},
	}
}

func (s *CreationServiceTestSuite) TestRecordAndGet() {
	record := s.newRecord(models.CreationKindToken, "Moon")
	s.Require().NoError(s.creationService.RecordCreation(record))

	found, err := s.creationService.GetCreation(record.ID)
	s.Require().NoError(err)
	s.Equal(record.ID, found.ID)
	s.Equal(models.CreationKindToken, found.Kind)
	s.Equal("Moon", found.Name)
	s.Equal(float64(9), found.Payload["decimals"])
	s.WithinDuration(time.Now(), found.CreatedAt, time.Minute)
}

func (s *CreationServiceTestSuite) TestGetMissing() {
	_, err := s.creationService.GetCreation(uuid.New().String())
	s.ErrorIs(err, services.ErrCreationNotFound)
}

func (s *CreationServiceTestSuite) TestBlinkIsNotRecorded() {
	err := s.creationService.RecordCreation(s.newRecord(models.CreationKindBlink, "tip"))
	s.Error(err)

	records, err := s.creationService.ListCreations("")
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *CreationServiceTestSuite) TestListByKind() {
	s.Require().NoError(s.creationService.RecordCreation(s.newRecord(models.CreationKindToken, "a")))
	s.Require().NoError(s.creationService.RecordCreation(s.newRecord(models.CreationKindNft, "b")))
	s.Require().NoError(s.creationService.RecordCreation(s.newRecord(models.CreationKindNft, "c")))

	nfts, err := s.creationService.ListCreations(models.CreationKindNft)
	s.Require().NoError(err)
	s.Len(nfts, 2)

	all, err := s.creationService.ListCreations("")
	s.Require().NoError(err)
	s.Len(all, 3)
}

func TestCreationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreationServiceTestSuite))
}
