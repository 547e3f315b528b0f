// Package ent defines the public data model of the ENT portal client:
// the Session interface, its configuration, the resource entities it
// returns (App, Message, User, UserPreview, UserInfo) and the error
// taxonomy shared by every operation.
//
// Entities are snapshots decoded from portal payloads. Each one keeps a
// non-owning handle to the Session that produced it, so follow-up calls
// (reply, send, pin, fetch related resources) reuse the session's cookie
// and XSRF token without holding any credential themselves.
//
// Quick start
//
//	session, err := entclient.NewWithPassword("ent.iledefrance.fr", "first.last", "secret")
//	if err != nil { log.Fatal(err) }
//
//	messages, err := session.FetchMessages(ctx, ent.FolderInbox, 0)
//	if err != nil { log.Fatal(err) }
//
//	for _, message := range messages {
//	  body, err := message.FetchBody(ctx, true)
//	  ...
//	}
//
// # Authentication
//
// The session logs in lazily on its first outbound call. Concurrent first
// calls share a single login. A session cookie that expires server-side is
// not renewed; IsUnauthorized reports the resulting errors so callers can
// build a new session.
//
// # Errors
//
// Operations fail with one of four kinds of errors: an *AuthError wrapping
// ErrAuthenticationFailed, an *APIError carrying the portal's error
// envelope, ErrInvalidArgument (and the sentinels wrapping it) for local
// precondition failures, or a wrapped transport/decoding error.
package ent
