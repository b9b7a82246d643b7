// Package schema validates public form payloads before they reach storage.
package schema

import (
	"net/mail"
	"strings"
)

// Platform tags accepted on inquiry submissions. The wire values are fixed;
// the admin console and the landing pages both key off them.
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformReddit    = "reddit"
	PlatformYouTube   = "youtube"
	PlatformGoogle    = "google"
	PlatformLinkedIn  = "linkedin"
	PlatformTikTok    = "tiktok"
	PlatformSnapchat  = "snapchat"
	// PlatformPersonal is the dedicated personal landing page.
	PlatformPersonal = "yash-saxena"
	// PlatformContact is the generic contact form.
	PlatformContact = "contact"
)

// Platforms lists every valid platform tag in display order.
var Platforms = []string{
	PlatformFacebook,
	PlatformInstagram,
	PlatformReddit,
	PlatformYouTube,
	PlatformGoogle,
	PlatformLinkedIn,
	PlatformTikTok,
	PlatformSnapchat,
	PlatformPersonal,
	PlatformContact,
}

var platformSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Platforms))
	for _, p := range Platforms {
		set[p] = struct{}{}
	}
	return set
}()

// ValidPlatform reports whether tag is one of the fixed platform values.
func ValidPlatform(tag string) bool {
	_, ok := platformSet[tag]
	return ok
}

// FieldError describes a single failed field check in a client-visible way.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InquiryForm is the payload accepted by the public submission endpoint.
type InquiryForm struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Country  string `json:"country"`
	Message  string `json:"message"`
	Platform string `json:"platform"`
}

// Normalize trims surrounding whitespace and lower-cases the email, the same
// canonical form the admin console displays.
func (f *InquiryForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Country = strings.TrimSpace(f.Country)
	f.Message = strings.TrimSpace(f.Message)
	f.Platform = strings.TrimSpace(f.Platform)
}

// Validate checks every field and returns one error per failing field. The
// messages are shown verbatim by the landing pages, so they must not change.
func (f *InquiryForm) Validate() []FieldError {
	var errs []FieldError

	if f.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	if len(f.Phone) < 8 {
		errs = append(errs, FieldError{Field: "phone", Message: "Valid phone number is required"})
	}
	if !validEmail(f.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Valid email address is required"})
	}
	if f.Country == "" {
		errs = append(errs, FieldError{Field: "country", Message: "Country is required"})
	}
	if len(f.Message) < 10 {
		errs = append(errs, FieldError{Field: "message", Message: "Please provide more details about your business and goals"})
	}
	if !ValidPlatform(f.Platform) {
		errs = append(errs, FieldError{Field: "platform", Message: "Invalid platform"})
	}

	return errs
}

func validEmail(address string) bool {
	if address == "" {
		return false
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return false
	}
	// mail.ParseAddress accepts display names and local-only addresses;
	// the form expects a bare user@domain value.
	if parsed.Address != address {
		return false
	}
	at := strings.LastIndex(address, "@")
	return at > 0 && strings.Contains(address[at+1:], ".")
}
