package entities

// ConfirmationState is the outcome of following an e-mail confirmation link
type ConfirmationState string

const (
	// ConfirmationLoading is the client's initial state before the server answers
	ConfirmationLoading   ConfirmationState = "loading"
	ConfirmationSuccess   ConfirmationState = "success"
	ConfirmationAmbiguous ConfirmationState = "ambiguous"
	ConfirmationError     ConfirmationState = "error"
)

// ConfirmationResult is returned by GET /auth/confirm
type ConfirmationResult struct {
	State           ConfirmationState `json:"state"`
	Message         string            `json:"message"`
	DeepLink        string            `json:"deepLink"`
	ResendAvailable bool              `json:"resendAvailable"`
}
