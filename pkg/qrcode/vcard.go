package qrcode

import "strings"

// VCard is the subset of vCard 3.0 fields used for a personal contact card.
type VCard struct {
	Name     string
	Title    string
	Email    string
	Phone    string
	URL      string
	Location string
}

var vcardEscaper = strings.NewReplacer(`\`, `\\`, ",", `\,`, ";", `\;`, "\n", `\n`)

// String renders the card. Empty fields are omitted.
func (c VCard) String() string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")

	raw := func(prop, value string) {
		b.WriteString(prop)
		b.WriteByte(':')
		b.WriteString(value)
		b.WriteString("\r\n")
	}
	line := func(prop, value string) {
		if value = strings.TrimSpace(value); value != "" {
			raw(prop, vcardEscaper.Replace(value))
		}
	}

	line("FN", c.Name)
	if name := strings.TrimSpace(c.Name); name != "" {
		raw("N", structuredName(name))
	}
	line("TITLE", c.Title)
	line("EMAIL;TYPE=INTERNET", c.Email)
	line("TEL", c.Phone)
	line("URL", c.URL)
	line("ADR", c.Location)

	b.WriteString("END:VCARD\r\n")
	return b.String()
}

// structuredName renders the escaped "Family;Given" value of N from a display
// name whose last word is taken as the family name.
func structuredName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return vcardEscaper.Replace(name)
	}
	family := vcardEscaper.Replace(parts[len(parts)-1])
	given := vcardEscaper.Replace(strings.Join(parts[:len(parts)-1], " "))
	return family + ";" + given
}
