package tools

import "github.com/ledgermate/ledgermate/internal/store"

// NewLedgerRegistry builds the full tool registry backed by db.
// Resolved once at startup; the definitions it produces are the contract
// the model is told about and must remain stable for a conversation.
func NewLedgerRegistry(db *store.DB) *Registry {
	return NewRegistry(
		NewAddExpenseTool(db),
		NewListExpensesTool(db),
		NewAddIncomeTool(db),
		NewListIncomeTool(db),
		NewAddClientTool(db),
		NewFindClientTool(db),
		NewListClientsTool(db),
		NewAddVendorTool(db),
		NewListVendorsTool(db),
		NewAddCategoryTool(db),
		NewListCategoriesTool(db),
		NewSetBudgetTool(db),
		NewBudgetStatusTool(db),
		NewAddProjectTool(db),
		NewListProjectsTool(db),
		NewAddTaxRateTool(db),
		NewListTaxRatesTool(db),
		NewParseDateTool(),
		NewConvertCurrencyTool(),
		NewSpendingReportTool(db),
		NewDeleteRecordTool(db),
		NewListPendingTool(db),
	)
}
