package losses

import "context"

// Repository reads outbound loss transactions from the register.
// Implementations apply the scenario, kit, module, category, document
// and date filters in SQL; type and item-text filters need the
// classifier and are applied by the service.
type Repository interface {
	LossTransactions(ctx context.Context, f Filter) ([]TransactionRow, error)
}
