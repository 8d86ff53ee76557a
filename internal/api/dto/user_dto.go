package dto

// CreateUserRequest payload for new accounts. The email doubles as the
// account identifier.
type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	DOB       string `json:"dob"`
	CreatedAt string `json:"createdAt"`
}

// CompleteCaseRequest payload for recording a case outcome.
type CompleteCaseRequest struct {
	Rating string `json:"rating"`
}

// ExpiryResponse is the subscription-expiry projection for a user.
type ExpiryResponse struct {
	SubscriptionExpiry string `json:"subscriptionExpiry"`
}
