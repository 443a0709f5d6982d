package page

import (
	"regexp"
	"strings"

	"huangye/pkg/model"
)

// Button is one action on the company page.
type Button struct {
	Kind    string // "dial", "website", "map", "copy"
	Label   string
	Href    string // empty for copy buttons
	Value   string // clipboard payload for copy buttons
	Primary bool
}

// phoneRe accepts international and local phone shapes; anything else in
// the contact field is treated as a handle (WeChat, WhatsApp name).
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,}$`)

func isPhone(contact string) bool {
	return phoneRe.MatchString(strings.TrimSpace(contact))
}

// Buttons assembles the action buttons for a company. Exactly one button
// is primary, chosen by the fixed precedence map > website > phone.
func Buttons(c *model.Company, place *model.CachedPlace, embedURL string) []Button {
	var buttons []Button

	mapLink := c.MapURL
	if mapLink == "" && place != nil {
		mapLink = place.URL
	}
	if mapLink == "" && embedURL != "" {
		mapLink = embedURL
	}
	if mapLink != "" {
		buttons = append(buttons, Button{Kind: "map", Label: "查看地图", Href: mapLink})
	}

	website := c.Website
	if website == "" && place != nil {
		website = place.Website
	}
	if website != "" {
		buttons = append(buttons, Button{Kind: "website", Label: "访问网站", Href: website})
	}

	if c.HasContact() {
		contact := strings.TrimSpace(c.Contact)
		if isPhone(contact) {
			buttons = append(buttons, Button{
				Kind:  "dial",
				Label: "拨打电话",
				Href:  "tel:" + strings.ReplaceAll(contact, " ", ""),
			})
		} else {
			buttons = append(buttons, Button{Kind: "copy", Label: "复制联系方式", Value: contact})
		}
	} else if place != nil && place.FormattedPhone != "" {
		buttons = append(buttons, Button{
			Kind:  "dial",
			Label: "拨打电话",
			Href:  "tel:" + strings.ReplaceAll(place.FormattedPhone, " ", ""),
		})
	}

	// Primary precedence: map > website > phone. The slice is already in
	// that order, so the first button wins.
	if len(buttons) > 0 {
		buttons[0].Primary = true
	}

	return buttons
}
