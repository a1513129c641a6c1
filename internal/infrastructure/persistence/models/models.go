// Package models holds the gorm persistence models, the anti-corruption
// layer between domain aggregates and tables.
package models

// All lists every model owned by the ledger schema, in creation order.
func All() []interface{} {
	return []interface{}{
		&RegistrationModel{},
		&VariantModel{},
		&SubscriptionModel{},
		&LedgerEventModel{},
		&SequenceModel{},
		&TokenAccountModel{},
		&TokenAllowanceModel{},
	}
}
