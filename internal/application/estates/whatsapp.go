package estates

import (
	"net/url"
	"regexp"
	"strings"

	"estates-backend/internal/domain"
)

const DefaultWhatsAppNumber = "+573001234567"

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// WhatsAppLink builds the wa.me deep link used by the "contact agent" button.
// The agent's phone wins over defaultPhone.
func WhatsAppLink(l domain.PropertyListing, defaultPhone string) string {
	phone := defaultPhone
	if phone == "" {
		phone = DefaultWhatsAppNumber
	}
	if l.Agent != nil && l.Agent.Phone != "" {
		phone = l.Agent.Phone
	}
	phone = strings.TrimLeft(nonPhoneChars.ReplaceAllString(phone, ""), "0")

	code := domain.StringValue(l.PropertyCode)
	if code == "" {
		code = "N/A"
	}
	text := "Hola, estoy interesado en la propiedad con código: " + code
	return "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
