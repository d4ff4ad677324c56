package response

import "pobackend/pkg/pagination"

// Response represents a standard API response format
type Response struct {
	Success    bool             `json:"success"`
	StatusCode int              `json:"status_code"`
	Message    string           `json:"message,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, message string, data interface{}) Response {
	return Response{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// SuccessWithPagination wraps one page of results together with its position.
func SuccessWithPagination(statusCode int, data interface{}, page, limit int, total int64) Response {
	meta := pagination.NewMeta(page, limit, total)
	return Response{
		Success:    true,
		StatusCode: statusCode,
		Data:       data,
		Pagination: &meta,
	}
}

// Error returns a standard error response. message is shown to users; detail
// is optional and only filled outside production.
func Error(statusCode int, message string, detail ...string) Response {
	r := Response{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
	}
	if len(detail) > 0 {
		r.Error = detail[0]
	}
	return r
}
