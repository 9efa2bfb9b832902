package constants

// Standard Response Field Keys
const (
	// Cursor pagination fields
	ResponseFieldItems      = "items"
	ResponseFieldNextCursor = "next_cursor"
	ResponseFieldPrevCursor = "prev_cursor"

	// Common response fields
	ResponseFieldMessage = "message"
	ResponseFieldCode    = "code"
	ResponseFieldDetails = "details"
)

// BuildListResponse shapes a cursor page. Absent cursors are omitted.
func BuildListResponse(items any, nextCursor, prevCursor *string) map[string]any {
	response := map[string]any{
		ResponseFieldItems: items,
	}
	if nextCursor != nil {
		response[ResponseFieldNextCursor] = *nextCursor
	}
	if prevCursor != nil {
		response[ResponseFieldPrevCursor] = *prevCursor
	}
	return response
}

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil && details != "" {
		response[ResponseFieldDetails] = details
	}

	return response
}

// BuildCodedErrorResponse adds the machine readable error code.
func BuildCodedErrorResponse(code, message string, details any) map[string]any {
	response := BuildErrorResponse(message, details)
	if code != "" {
		response[ResponseFieldCode] = code
	}
	return response
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}
