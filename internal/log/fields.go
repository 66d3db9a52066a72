package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldSuccess   = "success"
	FieldCount     = "count"
	FieldDropped   = "dropped"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldExpenseID = "expense_id"
	FieldName      = "name"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDueDay    = "due_day"
	FieldMonthKey  = "month_key"
	FieldPaid      = "paid"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentConfig  = "config"
	ComponentUI      = "ui"
)

// Operations defines standard operation names
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpToggle  = "toggle"
	OpLoad    = "load"
	OpSave    = "save"
	OpExport  = "export"
	OpImport  = "import"
	OpRender  = "render"
	OpStartup = "startup"
)
