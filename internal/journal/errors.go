package journal

import "codeberg.org/mutker/gaugectl/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("journal_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("journal_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("journal_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("journal_schema_migration_failed")
	ErrTransactionFailed      = errors.ErrorCode("journal_transaction_failed")

	// Storage Errors
	ErrStorageInit  = errors.ErrorCode("journal_storage_init_failed")
	ErrStorageClose = errors.ErrorCode("journal_storage_close_failed")
	ErrQueryFailed  = errors.ErrorCode("journal_query_failed")
	ErrClosed       = errors.ErrorCode("journal_closed")

	// Record Errors
	ErrInvalidRecord = errors.ErrorCode("journal_invalid_record")
)
