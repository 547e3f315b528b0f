// Package docs holds the method reference of the public ent types and
// renders it as markdown or HTML.
package docs

// Param describes a method parameter.
type Param struct {
	Name        string `json:"name"                  yaml:"name"`
	Type        string `json:"type"                  yaml:"type"`
	Required    bool   `json:"required"              yaml:"required"`
	Default     string `json:"default,omitempty"     yaml:"default,omitempty"`
	Description string `json:"description"           yaml:"description"`
}

// Method describes a method of a documented type.
type Method struct {
	Name        string  `json:"name"        yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Returns     string  `json:"returns"     yaml:"returns"`
	Params      []Param `json:"params"      yaml:"params"`
}

// Type describes a documented type.
type Type struct {
	Name        string   `json:"name"        yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Methods     []Method `json:"methods"     yaml:"methods"`
}

var ctxParam = Param{Name: "ctx", Type: "context.Context", Required: true, Description: "Cancels the request"}

var configParam = Param{
	Name:        "config",
	Type:        "*ent.MessageConfig",
	Required:    true,
	Description: "Subject, body, recipients, signature and attachments of the message",
}

var reference = []Type{
	{
		Name:        "Session",
		Description: "An authenticated connection to one portal account. The login happens on the first request.",
		Methods: []Method{
			{
				Name:        "entclient.New",
				Description: "Creates a session. The host is normalized to https://host/.",
				Returns:     "(ent.Session, error)",
				Params: []Param{
					{Name: "config", Type: "*ent.Config", Required: true, Description: "Portal host (eg: ent.iledefrance.fr), username and password"},
				},
			},
			{
				Name:        "Authenticate",
				Description: "Logs in unless the session already holds credentials.",
				Returns:     "error",
				Params:      []Param{ctxParam},
			},
			{
				Name:        "Fetch",
				Description: "Sends an authenticated request to the portal and returns the decoded JSON payload.",
				Returns:     "(json.RawMessage, error)",
				Params: []Param{
					ctxParam,
					{Name: "path", Type: "string", Required: true, Description: "Path relative to the portal URL, query string included"},
					{Name: "body", Type: "interface{}", Required: false, Default: "nil", Description: "Request body, encoded as JSON"},
					{Name: "method", Type: "string", Required: false, Default: "GET", Description: "HTTP method"},
				},
			},
			{
				Name:        "FetchLanguage",
				Description: "Fetches the current user's preferred language.",
				Returns:     "(string, error)",
				Params:      []Param{ctxParam},
			},
			{
				Name:        "FetchMessages",
				Description: "Fetches a page of messages from a system folder.",
				Returns:     "([]*ent.Message, error)",
				Params: []Param{
					ctxParam,
					{Name: "folder", Type: "ent.Folder", Required: true, Description: "One of Inbox, Sent, Drafts, Trash"},
					{Name: "page", Type: "int", Required: false, Default: "0", Description: "The page of the folder"},
				},
			},
			{
				Name:        "FetchMessage",
				Description: "Fetches a message.",
				Returns:     "(*ent.Message, error)",
				Params: []Param{
					ctxParam,
					{Name: "id", Type: "string", Required: true, Description: "The id of the message"},
					{Name: "parse", Type: "bool", Required: false, Default: "false", Description: "Converts the HTML body to plain text"},
				},
			},
			{
				Name:        "FetchUserInfo",
				Description: "Fetches information about the current user.",
				Returns:     "(*ent.UserInfo, error)",
				Params:      []Param{ctxParam},
			},
			{
				Name:        "FetchApps",
				Description: "Fetches the application catalog. The catalog is cached for the session lifetime.",
				Returns:     "([]*ent.App, error)",
				Params:      []Param{ctxParam},
			},
			{
				Name:        "FetchPinnedApps",
				Description: "Fetches the current user's pinned apps.",
				Returns:     "([]*ent.App, error)",
				Params:      []Param{ctxParam},
			},
			{
				Name:        "PinApps",
				Description: "Replaces the pinned apps.",
				Returns:     "error",
				Params: []Param{
					ctxParam,
					{Name: "apps", Type: "[]*ent.App", Required: true, Description: "The apps to pin, every other app is unpinned"},
				},
			},
			{
				Name:        "SearchUsers",
				Description: "Searches the users visible to the current user.",
				Returns:     "([]*ent.UserPreview, error)",
				Params: []Param{
					ctxParam,
					{Name: "query", Type: "*ent.SearchQuery", Required: true, Description: "Classes, functions, profiles and free text to search for"},
				},
			},
			{
				Name:        "FetchUser",
				Description: "Fetches a user profile.",
				Returns:     "(*ent.User, error)",
				Params: []Param{
					ctxParam,
					{Name: "id", Type: "string", Required: true, Description: "The id of the user"},
				},
			},
			{
				Name:        "SendMessage",
				Description: "Sends a message and returns its id.",
				Returns:     "(string, error)",
				Params:      []Param{ctxParam, configParam},
			},
			{
				Name:        "ReplyMessage",
				Description: "Replies to the sender of a message and returns the reply id.",
				Returns:     "(string, error)",
				Params: []Param{
					ctxParam,
					{Name: "original", Type: "*ent.Message", Required: true, Description: "The message to reply to"},
					configParam,
				},
			},
			{
				Name:        "TrashMessage",
				Description: "Moves a message to the trash folder.",
				Returns:     "error",
				Params: []Param{
					ctxParam,
					{Name: "id", Type: "string", Required: true, Description: "The id of the message"},
				},
			},
			{
				Name:        "AvatarURL",
				Description: "Returns the URL of a user's avatar.",
				Returns:     "string",
				Params: []Param{
					{Name: "id", Type: "string", Required: true, Description: "The id of the user"},
				},
			},
		},
	},
	{
		Name:        "Message",
		Description: "A mailbox message.",
		Methods: []Method{
			{
				Name:        "FetchBody",
				Description: "Returns the body of the message, fetching it once when missing.",
				Returns:     "(string, error)",
				Params: []Param{
					ctxParam,
					{Name: "parse", Type: "bool", Required: false, Default: "false", Description: "Converts the HTML body to plain text"},
				},
			},
			{
				Name:        "FetchAuthor",
				Description: "Fetches the profile of the sender.",
				Returns:     "(*ent.User, error)",
				Params:      []Param{ctxParam},
			},
			{
				Name:        "Reply",
				Description: "Replies to the sender. With ParseBody, the original message is quoted.",
				Returns:     "(string, error)",
				Params:      []Param{ctxParam, configParam},
			},
			{
				Name:        "MoveToTrash",
				Description: "Moves the message to the trash folder.",
				Returns:     "error",
				Params:      []Param{ctxParam},
			},
			{
				Name:        "Time",
				Description: "Returns the date of the message.",
				Returns:     "time.Time",
			},
		},
	},
	{
		Name:        "App",
		Description: "An application of the portal catalog.",
		Methods: []Method{
			{
				Name:        "FullAddress",
				Description: "Returns the absolute address of the app.",
				Returns:     "string",
			},
			{
				Name:        "Pin",
				Description: "Pins the app.",
				Returns:     "error",
				Params:      []Param{ctxParam},
			},
			{
				Name:        "Unpin",
				Description: "Unpins the app.",
				Returns:     "error",
				Params:      []Param{ctxParam},
			},
		},
	},
	{
		Name:        "User",
		Description: "A user profile.",
		Methods: []Method{
			{
				Name:        "SendMessage",
				Description: "Sends a message to the user and returns its id.",
				Returns:     "(string, error)",
				Params:      []Param{ctxParam, configParam},
			},
			{
				Name:        "AvatarURL",
				Description: "Returns the URL of the user's avatar.",
				Returns:     "string",
			},
		},
	},
	{
		Name:        "UserPreview",
		Description: "The reduced user profile returned by searches.",
		Methods: []Method{
			{
				Name:        "FetchUser",
				Description: "Fetches the full profile of the user.",
				Returns:     "(*ent.User, error)",
				Params:      []Param{ctxParam},
			},
			{
				Name:        "SendMessage",
				Description: "Sends a message to the user and returns its id.",
				Returns:     "(string, error)",
				Params:      []Param{ctxParam, configParam},
			},
			{
				Name:        "AvatarURL",
				Description: "Returns the URL of the user's avatar.",
				Returns:     "string",
			},
		},
	},
}
