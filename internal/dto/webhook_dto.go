package dto

// ClerkEmailAddress is a single email entry in a Clerk user payload.
type ClerkEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// ClerkUserData is the user object carried by Clerk webhook events.
type ClerkUserData struct {
	ID             string              `json:"id"`
	EmailAddresses []ClerkEmailAddress `json:"email_addresses"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
}

// ClerkWebhookEvent is the envelope Clerk posts to the webhook endpoint.
type ClerkWebhookEvent struct {
	Type string        `json:"type"`
	Data ClerkUserData `json:"data"`
}

// PrimaryEmail returns the first email address in the payload, if any.
func (d ClerkUserData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}

	return d.EmailAddresses[0].EmailAddress
}
