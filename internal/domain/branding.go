package domain

// Branding holds the tenant-configurable identity shown on the login screen
// and header. When LogoURL is empty the company name is rendered instead.
type Branding struct {
	CompanyName string `json:"company_name"`
	LogoURL     string `json:"logo_url,omitempty"`
}
