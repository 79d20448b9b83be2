package access

import (
	"context"
	"errors"

	"github.com/sis/backend/internal/domain/access"
	"github.com/sis/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GateService evaluates whether a session may enter a gated registrar page.
// Evaluation is one-shot per (session, page) pair; nothing is cached across
// page identifiers.
type GateService struct {
	pageAccessRepo access.PageAccessRepository
	log            *zap.Logger
}

// NewGateService creates a new GateService
func NewGateService(pageAccessRepo access.PageAccessRepository, log *zap.Logger) *GateService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GateService{
		pageAccessRepo: pageAccessRepo,
		log:            log,
	}
}

// Evaluate resolves the access decision for a page. A session without the
// registrar role is redirected to authentication before any privilege lookup
// is issued. With the role present, the per-page privilege row decides; a
// missing row, a non-affirmative flag, or a lookup failure all collapse into
// a denial; the caller cannot tell them apart.
func (s *GateService) Evaluate(ctx context.Context, session access.SessionContext, pageID int) access.Decision {
	if !session.IsRegistrar() {
		return access.DecisionRedirect
	}

	privilege, err := s.pageAccessRepo.FindPrivilege(ctx, session.EmployeeID, pageID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.log.Warn("page privilege check failed",
				zap.String("employee_id", session.EmployeeID),
				zap.Int("page_id", pageID),
				zap.Error(err),
			)
		}
		return access.DecisionDenied
	}

	if privilege == nil || !privilege.Granted() {
		return access.DecisionDenied
	}

	return access.DecisionGranted
}

// Privilege returns the raw privilege flag for an employee/page pair, the
// value the console's access probe endpoint reports. Missing rows surface as
// a zero flag rather than an error.
func (s *GateService) Privilege(ctx context.Context, employeeID string, pageID int) (int, error) {
	privilege, err := s.pageAccessRepo.FindPrivilege(ctx, employeeID, pageID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if privilege == nil {
		return 0, nil
	}
	return privilege.PagePrivilege, nil
}
