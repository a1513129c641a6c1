package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyIdentity  = "identity"
	ContextKeyRequestID = "request_id"

	// Casbin objects and actions
	ObjectCatalog = "catalog"
	ActionWrite   = "write"
	RoleAdmin     = "admin"

	// Application name used for config prefix, redis keys and log fields
	AppName = "subledger"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

// Database table names
const (
	TableRegistrations   = "registrations"
	TableVariants        = "subscription_variants"
	TableSubscriptions   = "subscriptions"
	TableLedgerEvents    = "ledger_events"
	TableLedgerSequences = "ledger_sequences"
	TableTokenAccounts   = "token_accounts"
	TableTokenAllowances = "token_allowances"
	TableCasbinRules     = "casbin_rule"
)
