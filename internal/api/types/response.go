// internal/api/types/response.go
package types

// ErrorResponse is the envelope for every error returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ListResponse is the envelope for list endpoints.
// T is the element type of the 'Data' slice.
type ListResponse[T any] struct {
	Data []T `json:"data"`
}
