package permission

import (
	"fmt"

	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/constants"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// InitCatalogPermissions grants catalog administration to the admin role and
// makes the ledger owner an admin. It is idempotent.
func InitCatalogPermissions(e *Enforcer, owner shared.Identity, log logger.Interface) error {
	policies := [][]string{
		{constants.RoleAdmin, constants.ObjectCatalog, constants.ActionWrite},
	}

	for _, policy := range policies {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if err := e.AddRoleForSubject(owner.String(), constants.RoleAdmin); err != nil {
		return err
	}

	log.Infow("catalog permissions initialized", "owner", owner.String())
	return nil
}
