package repositories

import (
	"context"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
)

// TaxReader defines read operations for revisions, contributions and opt ins
type TaxReader interface {
	// FindRevisionByID retrieves a specific revision.
	FindRevisionByID(ctx context.Context, revisionID string) (*domain.TaxRevision, error)

	// FindContributionByID retrieves a specific contribution with its calculation.
	FindContributionByID(ctx context.Context, contributionID string) (*domain.TaxContribution, error)

	// ListMandatoryContributions retrieves the active mandatory contributions of a revision,
	// in creation order. An empty revisionID matches every revision.
	ListMandatoryContributions(ctx context.Context, revisionID string) ([]domain.TaxContribution, error)

	// ListOptInContributions retrieves the contributions each employee actively opted into.
	ListOptInContributions(ctx context.Context, employeeIDs []string) (map[string][]domain.TaxContribution, error)
}

// TaxWriter defines write operations for revisions, contributions and opt ins
type TaxWriter interface {
	SaveRevision(ctx context.Context, revision domain.TaxRevision) error

	// SaveContribution persists a contribution and, for rule based ones, its clauses.
	SaveContribution(ctx context.Context, contribution domain.TaxContribution) error

	// SaveOptIn upserts an employee's opt in.
	SaveOptIn(ctx context.Context, optIn domain.EmployeeTaxOptIn) error
}

// TaxRepositoryFacade combines all tax repository interfaces
type TaxRepositoryFacade interface {
	TaxReader
	TaxWriter
}
