package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ListEnvelope is used by paginated admin listings.
type ListEnvelope struct {
	Data any      `json:"data"`
	Meta ListMeta `json:"meta"`
}

type ListMeta struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
