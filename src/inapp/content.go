package inapp

import "strings"

// ContentType identifies how the content of an in-app message is rendered.
type ContentType int

const (
	// ContentTypeUnknown is any type string this SDK does not recognise. It
	// is rendered as HTML.
	ContentTypeUnknown ContentType = iota
	// ContentTypeHTML ...
	ContentTypeHTML
	// ContentTypeAlert ...
	ContentTypeAlert
	// ContentTypeBanner ...
	ContentTypeBanner
	// ContentTypeInboxHTML is HTML content with inbox metadata.
	ContentTypeInboxHTML
)

var contentTypeNames = map[ContentType]string{
	ContentTypeUnknown:   "unknown",
	ContentTypeHTML:      "html",
	ContentTypeAlert:     "alert",
	ContentTypeBanner:    "banner",
	ContentTypeInboxHTML: "inboxHtml",
}

// ContentTypeFrom matches s case-insensitively against the known content
// types.
func ContentTypeFrom(s string) ContentType {
	for t, name := range contentTypeNames {
		if t != ContentTypeUnknown && strings.EqualFold(name, s) {
			return t
		}
	}
	return ContentTypeUnknown
}

func (t ContentType) String() string {
	if name, ok := contentTypeNames[t]; ok {
		return name
	}
	return contentTypeNames[ContentTypeUnknown]
}

// AutoExpand is the padding value of a side that grows to fit the content.
const AutoExpand = -1

// Padding holds the distance, in percent of the screen, between each side of
// the message and the screen edge. A side may also be AutoExpand.
type Padding struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Content is the parsed content of an in-app message.
type Content interface {
	Type() ContentType
}

// HTMLContent ...
type HTMLContent struct {
	Padding         Padding `json:"padding"`
	BackgroundAlpha float64 `json:"backgroundAlpha"`
	HTML            string  `json:"html"`
}

// Type implements Content.
func (c *HTMLContent) Type() ContentType {
	return ContentTypeHTML
}

// InboxHTMLContent is HTMLContent carrying the fields shown in an inbox
// listing.
type InboxHTMLContent struct {
	HTMLContent
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
}

// Type implements Content.
func (c *InboxHTMLContent) Type() ContentType {
	return ContentTypeInboxHTML
}

// ParseError is returned when content cannot be built from a payload.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}
