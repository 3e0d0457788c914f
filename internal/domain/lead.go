package domain

// Lead is a contact-form submission forwarded into the lead database. It is
// independent of the testimonial pipeline and shares only the validation
// pattern.
type Lead struct {
	FirstName          string `json:"firstName" validate:"required,min=2,max=100"`
	LastName           string `json:"lastName" validate:"required,min=2,max=100"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone" validate:"required"`
	PreferredContact   string `json:"preferredContact" validate:"required,oneof=WhatsApp 'Texto (SMS)' Llamada Correo"`
	PilgrimageInterest string `json:"pilgrimageInterest" validate:"required,max=2000"`
	Message            string `json:"message" validate:"omitempty,max=2000"`
	ConsentContact     bool   `json:"consentContact"`
	ConsentMarketing   bool   `json:"consentMarketing"`
	Honeypot           string `json:"website"`
	SourcePage         string `json:"sourcePage"`
	UTMSource          string `json:"utmSource"`
	UTMMedium          string `json:"utmMedium"`
	UTMCampaign        string `json:"utmCampaign"`
}
