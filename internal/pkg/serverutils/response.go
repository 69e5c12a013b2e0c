package serverutils

// ErrorBody is the stable failure shape every endpoint returns: a fixed
// "error" label plus, where one exists, the underlying diagnostic.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}

func ErrorResponseWithDetail(message, detail string) ErrorBody {
	return ErrorBody{Error: message, Detail: detail}
}
