package inapp

import (
	"fmt"
	"strings"

	"github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/constants"
)

// Keys of the inAppDisplaySettings map.
const (
	paddingTop    = "top"
	paddingLeft   = "left"
	paddingBottom = "bottom"
	paddingRight  = "right"

	displayOption = "displayOption"
	autoExpand    = "AutoExpand"
	percentage    = "percentage"
)

type contentCreator func(content map[string]interface{}) (Content, error)

var creators = map[ContentType]contentCreator{
	ContentTypeHTML:      createHTMLContent,
	ContentTypeInboxHTML: createInboxHTMLContent,
}

// Parse builds the content of an in-app message from its JSON payload. The
// "type" key selects the kind of content; when it is missing, or names a type
// without a dedicated creator, the payload is treated as HTML.
func Parse(content map[string]interface{}) (Content, error) {
	contentType := ContentTypeHTML
	if s, ok := common.StringValue(content, constants.InAppContentType); ok {
		contentType = ContentTypeFrom(s)
	}

	create, ok := creators[contentType]
	if !ok {
		create = createHTMLContent
	}

	return create(content)
}

// ParseJSON decodes data and parses the resulting object.
func ParseJSON(data []byte) (Content, error) {
	m, err := common.DecodeJSONMap(data)
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("Could not parse json: %s", err)}
	}
	return Parse(m)
}

func createHTMLContent(content map[string]interface{}) (Content, error) {
	html, err := tryCreateHTML(content)
	if err != nil {
		return nil, err
	}
	return html, nil
}

func createInboxHTMLContent(content map[string]interface{}) (Content, error) {
	html, err := tryCreateHTML(content)
	if err != nil {
		return nil, err
	}

	title, _ := common.StringValue(content, constants.InboxTitle)
	subtitle, _ := common.StringValue(content, constants.InboxSubtitle)
	icon, _ := common.StringValue(content, constants.InboxIcon)

	return &InboxHTMLContent{
		HTMLContent: *html,
		Title:       title,
		Subtitle:    subtitle,
		Icon:        icon,
	}, nil
}

func tryCreateHTML(content map[string]interface{}) (*HTMLContent, error) {
	html, ok := common.StringValue(content, constants.InAppHTML)
	if !ok {
		return nil, &ParseError{Reason: "no html"}
	}

	if !strings.Contains(strings.ToLower(html), constants.InAppHref) {
		return nil, &ParseError{
			Reason: fmt.Sprintf("No href tag found in in-app html payload %s", html),
		}
	}

	settings, _ := common.MapValue(content, constants.InAppDisplaySettings)

	return &HTMLContent{
		Padding:         decodePaddings(settings),
		BackgroundAlpha: backgroundAlpha(settings),
		HTML:            html,
	}, nil
}

func decodePaddings(settings map[string]interface{}) Padding {
	if settings == nil {
		return Padding{}
	}

	return Padding{
		Top:    decodePadding(settings[paddingTop]),
		Left:   decodePadding(settings[paddingLeft]),
		Bottom: decodePadding(settings[paddingBottom]),
		Right:  decodePadding(settings[paddingRight]),
	}
}

// decodePadding returns AutoExpand for {"displayOption": "AutoExpand"}, the
// integer part of {"percentage": n}, and 0 for anything else.
func decodePadding(value interface{}) int {
	m, ok := value.(map[string]interface{})
	if !ok {
		return 0
	}

	if option, ok := common.StringValue(m, displayOption); ok && option == autoExpand {
		return AutoExpand
	}

	if n, ok := common.ToInt64(m[percentage]); ok {
		return int(n)
	}

	return 0
}

func backgroundAlpha(settings map[string]interface{}) float64 {
	if settings == nil {
		return 0
	}
	if f, ok := common.ToFloat(settings[constants.InAppBackgroundAlpha]); ok {
		return f
	}
	return 0
}
