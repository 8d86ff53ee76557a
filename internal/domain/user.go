package domain

// SubscriptionStatus represents lifecycle states for a user's subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Rating is the outcome marker recorded when a user completes a case.
type Rating string

const (
	RatingRed    Rating = "red"
	RatingYellow Rating = "yellow"
	RatingGreen  Rating = "green"
)

// Valid reports whether r is one of the recognized outcome markers.
func (r Rating) Valid() bool {
	switch r {
	case RatingRed, RatingYellow, RatingGreen:
		return true
	}
	return false
}

// User is the domain model for a platform account. The email address is the
// primary key; there is no separate generated identifier.
type User struct {
	UserID             string             `json:"userId" dynamodbav:"userId"`
	FirstName          string             `json:"firstName" dynamodbav:"firstName"`
	LastName           string             `json:"lastName" dynamodbav:"lastName"`
	Gender             string             `json:"gender" dynamodbav:"gender"`
	DOB                string             `json:"dob" dynamodbav:"dob"`
	Tier               int                `json:"tier" dynamodbav:"tier"`
	CreatedAt          string             `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt          string             `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
	CompletedCases     map[string]Rating  `json:"completedCases" dynamodbav:"completedCases"`
	SubscriptionExpiry string             `json:"subscriptionExpiry,omitempty" dynamodbav:"subscriptionExpiry,omitempty"`
	Status             SubscriptionStatus `json:"status,omitempty" dynamodbav:"status,omitempty"`
	CustomerID         string             `json:"customerId,omitempty" dynamodbav:"customerId,omitempty"`
}
