package helper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/hoisie/mustache"
)

// Helpline number used by the hero and application sections.
const HelplineWhatsApp = "917073741421"

const (
	managerGreeting = "नमस्ते, मुझे PM Surya Ghar योजना के बारे में जानकारी चाहिए"
	jobGreetingTmpl = "Hi, I'm interested in the {{{title}}} position"
	waLinkTmpl      = "https://wa.me/{{{number}}}{{#text}}?text={{{text}}}{{/text}}"
)

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppLink renders a wa.me deep link. Numbers without a country code get
// the Indian prefix.
func WhatsAppLink(number, text string) string {
	digits := nonDigits.ReplaceAllString(number, "")
	if len(digits) == 10 {
		digits = "91" + digits
	}
	ctx := map[string]any{"number": digits}
	if strings.TrimSpace(text) != "" {
		ctx["text"] = url.QueryEscape(text)
	}
	return mustache.Render(waLinkTmpl, ctx)
}

func HelplineLink() string { return WhatsAppLink(HelplineWhatsApp, "") }

func ManagerWhatsAppLink(mobile string) string {
	return WhatsAppLink(mobile, managerGreeting)
}

func JobWhatsAppLink(whatsapp, title string) string {
	return WhatsAppLink(whatsapp, mustache.Render(jobGreetingTmpl, map[string]string{"title": title}))
}
