package errors

// HttpError is the JSON error envelope returned by every failing handler.
type HttpError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	KindValidation        = "validation"
	KindDuplicateBid      = "duplicate_bid"
	KindIllegalTransition = "illegal_transition"
	KindNotFound          = "not_found"
	KindUnauthorized      = "unauthorized"
	KindForbidden         = "forbidden"
	KindInternal          = "internal"
)

func NewHttpError(kind, message string) HttpError {
	return HttpError{Kind: kind, Message: message}
}
