package admission

import (
	"context"
	"strings"

	"github.com/sis/backend/internal/domain/admission"
	"github.com/sis/backend/internal/domain/shared"
)

// PermitResponse is the payload the exam permit view renders
type PermitResponse struct {
	PersonID        int64  `json:"person_id"`
	ApplicantNumber string `json:"applicant_number"`
	FullName        string `json:"full_name"`
	ExamDate        string `json:"exam_date"`
	ExamTime        string `json:"exam_time"`
	ExamRoom        string `json:"exam_room"`
}

// LookupService resolves an applicant number (typed or scanned from a QR
// code) to the person behind it
type LookupService struct {
	personRepo admission.PersonRepository
}

// NewLookupService creates a new LookupService
func NewLookupService(personRepo admission.PersonRepository) *LookupService {
	return &LookupService{personRepo: personRepo}
}

// LookupByApplicantNumber finds the person for an applicant number. The query
// is an opaque text token; a blank query and an unknown number both surface
// as not found.
func (s *LookupService) LookupByApplicantNumber(ctx context.Context, query string) (*PermitResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, shared.ErrNotFound
	}

	person, err := s.personRepo.FindByApplicantNumber(ctx, query)
	if err != nil {
		return nil, err
	}

	return &PermitResponse{
		PersonID:        person.PersonID,
		ApplicantNumber: person.ApplicantNumber,
		FullName:        fullName(person),
		ExamDate:        person.ExamDate,
		ExamTime:        person.ExamTime,
		ExamRoom:        person.ExamRoom,
	}, nil
}

func fullName(p *admission.Person) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.FirstName, p.MiddleName, p.LastName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}
