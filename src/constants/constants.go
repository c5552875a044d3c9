package constants

// In-app content payload keys.
const (
	InAppContent         = "content"
	InAppContentType     = "type"
	InAppHTML            = "html"
	InAppHref            = "href"
	InAppDisplaySettings = "inAppDisplaySettings"
	InAppBackgroundAlpha = "backgroundAlpha"
	InboxTitle           = "inboxTitle"
	InboxSubtitle        = "inboxSubtitle"
	InboxIcon            = "inboxIcon"
)

// In-app message payload keys.
const (
	InAppMessages      = "inAppMessages"
	InAppMessageID     = "messageId"
	InAppCampaignID    = "campaignId"
	InAppTrigger       = "trigger"
	InAppTriggerType   = "type"
	InAppExpiresAt     = "expiresAt"
	InAppSaveToInbox   = "saveToInbox"
	InAppRead          = "read"
	InAppPriority      = "priorityLevel"
	InAppCustomPayload = "customPayload"
	InAppInboxMetadata = "inboxMetadata"
	InAppClickedURL    = "clickedUrl"
	InAppCount         = "count"
)

// Request body keys.
const (
	Email       = "email"
	UserID      = "userId"
	EventName   = "eventName"
	DataFields  = "dataFields"
	MergeNested = "mergeNestedObjects"
	Platform    = "platform"
	SDKVersion  = "SDKVersion"
)

// HTTP headers.
const (
	HeaderAPIKey      = "Api-Key"
	HeaderSDKVersion  = "SDK-Version"
	HeaderSDKPlatform = "SDK-Platform"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// API paths, relative to the configured endpoint.
const (
	PathTrack           = "events/track"
	PathUpdateUser      = "users/update"
	PathGetMessages     = "inApp/getMessages"
	PathTrackInAppClick = "events/trackInAppClick"
	PathInAppConsume    = "events/inAppConsume"
)

// URL schemes recognised in clicked in-app links.
const (
	SchemeAction   = "action"
	SchemeInternal = "itbl"
)
