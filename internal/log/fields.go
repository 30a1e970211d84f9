package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldEntryID   = "entry_id"
	FieldKind      = "kind"
	FieldDetail    = "detail"
	FieldEntries   = "entries"
	FieldBackend   = "backend"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentConfig  = "config"
)
