package dto

// BrandingRequest payload for branding updates.
type BrandingRequest struct {
	CompanyName string `json:"company_name"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// BrandingResponse mirrors the stored branding document.
type BrandingResponse struct {
	CompanyName string `json:"company_name"`
	LogoURL     string `json:"logo_url,omitempty"`
}
