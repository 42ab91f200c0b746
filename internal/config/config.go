package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Agestack/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Agestack"
	AppID             = "com.github.tartampluch.go-agestack"
	KeyringService    = "com.github.tartampluch.go-agestack"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagContacts     = "contacts"
	FlagPhotos       = "photos"
	FlagPerson       = "person"
	FlagUser         = "user"
	FlagPassword     = "password"
	FlagSavePassword = "save-password"
	FlagGranularity  = "granularity"
	FlagOrder        = "order"
	FlagServe        = "serve"
	FlagLang         = "lang"

	FlagDescVersion      = "Show application version and exit"
	FlagDescDebug        = "Enable debug logging to stdout"
	FlagDescContacts     = "Path to a vCard file with the tracked persons (BDAY required)"
	FlagDescPhotos       = "Path or URL of the photo manifest (JSON)"
	FlagDescPerson       = "Name of the person to build the chronology for (default: first in file)"
	FlagDescUser         = "HTTP basic auth username for a remote photo manifest"
	FlagDescPassword     = "HTTP basic auth password (falls back to the system keyring)"
	FlagDescSavePassword = "Store the given password in the system keyring and exit"
	FlagDescGranularity  = "Bucket granularity: fine or coarse"
	FlagDescOrder        = "Stack order: closest (birth-proximity first) or reversed"
	FlagDescServe        = "Port to publish the chronology feed on (empty: print once and exit)"
	FlagDescLang         = "Feed language for event summaries (en, fr)"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage    = "en"
	DefaultGranularity = "fine"
	DefaultLeapYear    = 2000 // Leap year fallback for dates like --02-29
	UIDSalt            = "go-agestack-v1-"

	GranularityFineName   = "fine"
	GranularityCoarseName = "coarse"
	OrderClosestName      = "closest"
	OrderReversedName     = "reversed"
)

// Pregnancy model: canonical 40-week term with integer week truncation.
// Photos taken before the start of the tracked window resolve to week 0.
const (
	PregnancyTermWeeks = 40
	DaysPerWeek        = 7
	MonthsPerYear      = 12
)

// Scrub playback pacing.
const (
	// SecondsPerItem is the wall-clock time one photo stays on screen at 1x.
	SecondsPerItem = 2.0

	SpeedMin = 1
	SpeedMax = 3
)

// -----------------------------------------------------------------------------
// Chronology Label Vocabulary
// -----------------------------------------------------------------------------

// Label strings are an API contract with the presentation layer and are
// deliberately not localized. Feed summaries built from them are (see i18n).
const (
	LabelBirthMonth      = "Birth Month"
	LabelPregnancy       = "Pregnancy"
	LabelBeforePregnancy = "Before Pregnancy"

	// Label formats. The %s slots carry the plural suffix.
	FormatLabelWeeksPregnant = "%d Week%s Pregnant"
	FormatLabelWeeksDaysPreg = "%d Week%s and %d Day%s Pregnant"
	FormatLabelMonths        = "%d Month%s"
	FormatLabelYears         = "%d Year%s"
	PluralSuffix             = "s"

	// Age rendering tokens.
	AgeUnitYear     = "year"
	AgeUnitMonth    = "month"
	AgeUnitDay      = "day"
	AgeUnitWeek     = "week"
	AgeNewborn      = "newborn"
	AgePregnantWord = "pregnant"
	AgeNotTracked   = "not yet in the tracked pregnancy window"
	AgeSeparator    = ", "
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields and manifest dates.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s@%s"

	// Query parameters for range-scoped manifest requests.
	QueryParamStart = "start"
	QueryParamEnd   = "end"

	FallbackName = "Unknown"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB: metadata only, never image payloads
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteFeed           = "/"
	RouteBuckets        = "/buckets"
	AddrSeparator       = ":"
	ChannelBufferSize   = 1
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Agestack//Chronology//EN"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goagestack"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when a person
	// has no photos yet. Returning it keeps feed clients from flagging the
	// subscription as broken.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyCalName      = "cal_name"
	TKeyEvtSummary   = "event_summary"
	TKeyFeedDescribe = "feed_describes"
)

// SupportedLanguages defines the list of available feed languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidInput      = "invalid input: birth date is not a valid instant"
	ErrUnresolvableLabel = "unresolvable bucket label"
	ErrNoPersons         = "no person with a usable birth date found"
	ErrPersonNotFound    = "requested person not found in contacts"
	ErrContactsRequired  = "a contacts file is required"
	ErrPhotosRequired    = "a photo manifest path or URL is required"
	ErrGranularity       = "granularity must be fine or coarse"
	ErrOrder             = "order must be closest or reversed"
	ErrServerStartup     = "server startup failed"
	ErrServerShutdown    = "server shutdown failed"
	ErrPortRequired      = "server port is required"
	ErrInvalidURL        = "invalid URL structure"
	ErrProtocol          = "unsupported protocol scheme (http/https only)"
	ErrVCardParse        = "failed to parse vCard stream"
	ErrManifestParse     = "failed to parse photo manifest"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrDateParse         = "unable to parse date"
	ErrKeyringSave       = "failed to store password in keyring"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrAppFailed         = "application failed unexpectedly"
	ErrWriteResp         = "failed to write response body"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrEncodeJSON        = "failed to encode bucket view"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Chronology initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Chronology cache updated"
	MsgBuildStarted   = "Chronology build started..."
	MsgBuildSuccess   = "Chronology build successful"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedPhoto   = "Skipping manifest entry with invalid date"
	MsgPersonLoaded   = "Person loaded from contacts"
	MsgManifestLoaded = "Photo manifest loaded"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgPassSaved      = "Password stored in system keyring"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyGranular  = "granularity"
	LogKeyBuckets   = "buckets"
	LogKeyPhotos    = "photos"
	LogKeySkipped   = "skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyUser      = "user"
	LogKeyLabel     = "label"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain       = "main"
	CompChronology = "chronology"
	CompTimeline   = "timeline"
	CompServer     = "server"
	CompFetcher    = "fetcher"
	CompSource     = "source"
	CompI18n       = "i18n"
)
