package domain

// ErrorResponse is the JSON body of every failed API call.
// @Description Standard error body of the API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"validation error: unit price must not be negative"`
}
