package request

// SetProviderConfigRequest represents the body for configuring the remote
// gold-price provider. The token is encrypted before it is stored.
type SetProviderConfigRequest struct {
	Endpoint string `json:"endpoint"`
	Token    string `json:"token"`
}
