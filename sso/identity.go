package sso

// Identity is the normalized "OpenID" user profile produced from a provider's
// user info response. Only the fields a provider actually returns are set;
// which fields those are is up to the provider's ResponseConverter. An
// Identity is never mutated after it has been created.
type Identity struct {
	// ID is the subject identifier the provider uses for this user.
	ID string `json:"id,omitempty"`

	// Email is the user's email address, if the provider shares it.
	Email string `json:"email,omitempty"`

	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`

	// Picture is a URL to the user's avatar.
	Picture string `json:"picture,omitempty"`

	// Provider is the identifier of the provider the identity came from
	// ("google", "github", ...). Filled in from the descriptor when the
	// converter leaves it empty.
	Provider string `json:"provider,omitempty"`
}
