package user

import (
	"strings"
)

// Profile is the wallet owner as shown on the profile screen.
type Profile struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	LegalID string `json:"legalId"`
	Avatar  string `json:"avatar"`
}

// Initials derives the avatar text from the name when none is set.
func (p Profile) Initials() string {
	if p.Avatar != "" {
		return p.Avatar
	}
	var b strings.Builder
	for i, part := range strings.Fields(p.Name) {
		if i == 2 {
			break
		}
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}
