package serrors

// BaseError carries a stable machine-readable code next to the message.
type BaseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *BaseError) Error() string {
	return e.Message
}

func NewError(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Is matches any BaseError with the same code, so wrapped copies still compare.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
