package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *InkwellError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *InkwellError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *InkwellError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Source store errors

func QueryFailed(database string, cause error) *InkwellError {
	return UpstreamError(cause, "database query failed").
		WithContext("database", database)
}

func BlockFetchFailed(blockID string, cause error) *InkwellError {
	return UpstreamError(cause, "block children fetch failed").
		WithContext("block_id", blockID)
}

func PostNotFound(slug string) *InkwellError {
	return NotFoundError("post not found").
		WithContext("slug", slug)
}

// Mail errors

func MailDeliveryFailed(cause error) *InkwellError {
	return Wrap(cause, CategoryMail, SeverityError, "contact mail delivery failed")
}
