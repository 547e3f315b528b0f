package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the timeout applied by the CLI when none is configured.
	// The library itself imposes none.
	DefaultHTTPTimeout = 30 * time.Second
)

// Portal hosts.
const (
	// DefaultAuthURL is the canonical host that performs logins for every
	// regional portal.
	DefaultAuthURL = "https://ent.iledefrance.fr"

	// LoginCallbackURL is the landing page the login form redirects to.
	LoginCallbackURL = "https://ent.iledefrance.fr/timeline/timeline"
)

// Login handshake.
const (
	// AuthLoginPath is the form endpoint on the authentication host.
	AuthLoginPath = "/auth/login"

	// LegacyUserAgent is the browser identity the login form expects.
	LegacyUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/87.0.4280.141 Safari/537.36 OPR/73.0.3856.344"

	// WebviewCookie suppresses the mobile webview interstitial.
	WebviewCookie = "webviewignored=true:1hPTD+eIINwwCLLaCxDmq1mvlTs="

	// SessionCookieName is the cookie carrying the portal session id.
	SessionCookieName = "oneSessionId"

	// XSRFCookieName is the cookie carrying the anti-forgery token.
	XSRFCookieName = "XSRF-TOKEN"

	// XSRFHeaderName is the request header echoing the anti-forgery token.
	XSRFHeaderName = "X-XSRF-TOKEN"
)

// API paths, relative to the session base URL.
const (
	PathLanguage        = "userbook/preference/language"
	PathAppsPreference  = "userbook/preference/apps"
	PathUserInfo        = "auth/oauth2/userinfo"
	PathApplicationList = "applications-list"
	PathVisibleSearch   = "communication/visible"
	PathPerson          = "userbook/api/person"
	PathAvatar          = "userbook/avatar/"
	PathMessageList     = "zimbra/list"
	PathMessage         = "zimbra/message/"
	PathDraft           = "zimbra/draft"
	PathSend            = "zimbra/send"
	PathTrash           = "zimbra/trash"
)

// AvatarThumbnail is the thumbnail size requested for avatars.
const AvatarThumbnail = "381x381"

// Outgoing message markup.
const (
	// DefaultSubject is used when a message is sent without a subject.
	DefaultSubject = "(Aucun objet)"

	// ReplySubjectPrefix prefixes the original subject of a reply.
	ReplySubjectPrefix = "Re : "

	// BodyLineTemplate wraps one line of a parsed plain-text body.
	BodyLineTemplate = `<div class="ng-scope">%s</div>`

	// SignatureTemplate wraps a signature.
	SignatureTemplate = `<div class="signature new-signature ng-scope">%s</div>`

	// QuoteTemplate renders the original message below a reply. Arguments
	// are the author, the date, the subject and the original body.
	QuoteTemplate = `<p class="ng-scope">&nbsp;</p>` +
		`<p class="medium-text ng-scope">` +
		`<span translate="" key="transfer.from"><span class="no-style ng-scope">De : </span></span>` +
		`<em class="ng-binding">%s</em><br>` +
		`<span class="medium-importance" translate="" key="transfer.date"><span class="no-style ng-scope">Date: </span></span>` +
		`<em class="ng-binding">%s</em><br>` +
		`<span class="medium-importance" translate="" key="transfer.subject"><span class="no-style ng-scope">Objet : </span></span>` +
		`<em class="ng-binding">%s</em><br></p>` +
		`<blockquote class="ng-scope">%s</blockquote>`
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// CheckMarkSymbol is used to indicate pinned or unread items.
	CheckMarkSymbol = "✓"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"
)
