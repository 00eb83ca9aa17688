package command

import (
	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/cqrs"
	"github.com/eaglebank/account-service/shared/models"
)

// applyPatch overwrites the fields present in cmd. Nothing is written to
// account when the patch is rejected.
func applyPatch(cmd cqrs.PatchAccountCommand, account *models.Account) error {
	if cmd.Balance == nil && cmd.MonthlyMovements == nil && cmd.Status == nil {
		return apperr.BadRequest("At least one field must be provided")
	}
	if cmd.MonthlyMovements != nil {
		if limit, capped := account.MaxMonthlyMovements(); capped && *cmd.MonthlyMovements > limit {
			return apperr.BadRequest("Max monthly movements limit reached. The monthly movements available: %d", limit)
		}
	}

	if cmd.Balance != nil {
		account.Balance = *cmd.Balance
	}
	if cmd.MonthlyMovements != nil {
		account.MonthlyMovements = *cmd.MonthlyMovements
	}
	if cmd.Status != nil {
		account.Status = *cmd.Status
	}
	return nil
}
