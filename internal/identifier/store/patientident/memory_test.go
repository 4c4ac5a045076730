package patientident

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
)

type IdentifierStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	mrn   *models.IdentifierType
}

func (s *IdentifierStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.mrn = &models.IdentifierType{
		ID:   id.IdentifierTypeID(uuid.New()),
		Name: "Medical Record Number",
	}
}

func TestIdentifierStoreSuite(t *testing.T) {
	suite.Run(t, new(IdentifierStoreSuite))
}

func (s *IdentifierStoreSuite) newIdentifier(value string, patient id.PatientID) *models.PatientIdentifier {
	return &models.PatientIdentifier{
		Identifier: value,
		Type:       s.mrn,
		PatientID:  patient,
	}
}

func (s *IdentifierStoreSuite) TestSaveAndFindByPatient() {
	patient := id.PatientID(uuid.New())
	s.Require().NoError(s.store.Save(s.ctx, s.newIdentifier("1234", patient)))
	s.Require().NoError(s.store.Save(s.ctx, s.newIdentifier("5678", patient)))

	found, err := s.store.FindByPatient(s.ctx, patient)
	s.Require().NoError(err)
	s.Len(found, 2)
}

func (s *IdentifierStoreSuite) TestFindByPatientSkipsVoided() {
	patient := id.PatientID(uuid.New())
	voided := s.newIdentifier("1234", patient)
	voided.Voided = true
	s.Require().NoError(s.store.Save(s.ctx, voided))

	found, err := s.store.FindByPatient(s.ctx, patient)
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *IdentifierStoreSuite) TestInUseByAnotherPatient() {
	owner := id.PatientID(uuid.New())
	s.Require().NoError(s.store.Save(s.ctx, s.newIdentifier("1234", owner)))

	s.Run("different patient with same value and type", func() {
		inUse, err := s.store.IsIdentifierInUseByAnotherPatient(s.ctx, s.newIdentifier("1234", id.PatientID(uuid.New())))
		s.Require().NoError(err)
		s.True(inUse)
	})

	s.Run("unsaved patient matches every stored owner", func() {
		inUse, err := s.store.IsIdentifierInUseByAnotherPatient(s.ctx, s.newIdentifier("1234", id.PatientID{}))
		s.Require().NoError(err)
		s.True(inUse)
	})

	s.Run("same patient does not conflict with itself", func() {
		inUse, err := s.store.IsIdentifierInUseByAnotherPatient(s.ctx, s.newIdentifier("1234", owner))
		s.Require().NoError(err)
		s.False(inUse)
	})

	s.Run("different value is free", func() {
		inUse, err := s.store.IsIdentifierInUseByAnotherPatient(s.ctx, s.newIdentifier("9999", id.PatientID(uuid.New())))
		s.Require().NoError(err)
		s.False(inUse)
	})

	s.Run("same value under a different type is free", func() {
		other := s.newIdentifier("1234", id.PatientID(uuid.New()))
		other.Type = &models.IdentifierType{ID: id.IdentifierTypeID(uuid.New()), Name: "National ID"}
		inUse, err := s.store.IsIdentifierInUseByAnotherPatient(s.ctx, other)
		s.Require().NoError(err)
		s.False(inUse)
	})
}

func (s *IdentifierStoreSuite) TestVoidedRecordsDoNotBlockReuse() {
	owner := id.PatientID(uuid.New())
	voided := s.newIdentifier("1234", owner)
	voided.Voided = true
	s.Require().NoError(s.store.Save(s.ctx, voided))

	inUse, err := s.store.IsIdentifierInUseByAnotherPatient(s.ctx, s.newIdentifier("1234", id.PatientID(uuid.New())))
	s.Require().NoError(err)
	s.False(inUse)
}
