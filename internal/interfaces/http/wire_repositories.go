package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/ledger"
	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	"github.com/orris-inc/subledger/internal/infrastructure/repository"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	sequenceRepo     *repository.SequenceRepositoryImpl
	registrationRepo registration.Repository
	variantRepo      catalog.VariantRepository
	subscriptionRepo subscription.Repository
	eventLog         ledger.EventLog
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	sequenceRepo := repository.NewSequenceRepository(db, log)
	return &repositories{
		sequenceRepo:     sequenceRepo,
		registrationRepo: repository.NewRegistrationRepository(db, log),
		variantRepo:      repository.NewVariantRepository(db, log),
		subscriptionRepo: repository.NewSubscriptionRepository(db, log),
		eventLog:         repository.NewEventLogRepository(db, sequenceRepo, log),
	}
}
