// Package entclient provides the primary entry point for constructing an
// ENT portal session that implements the ent.Session interface.
//
// It layers host normalization, HTTP transport and the cookie based login
// handshake on top of the entities and interfaces defined in the ent
// package. Most applications should import entclient to build a session,
// then use the returned ent.Session and the entities it hands out.
//
// Quick start
//
//	import (
//	  "context"
//	  "fmt"
//	  "log"
//
//	  "github.com/fivetwenty-io/ent-client/pkg/ent"
//	  "github.com/fivetwenty-io/ent-client/pkg/entclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // The login happens on the first request.
//	  session, err := entclient.NewWithPassword("ent.iledefrance.fr", "jean.dupont", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  messages, err := session.FetchMessages(ctx, ent.FolderInbox, 0)
//	  if err != nil { log.Fatal(err) }
//
//	  for _, message := range messages {
//	    body, err := message.FetchBody(ctx, true)
//	    if err != nil { log.Fatal(err) }
//	    fmt.Println(message.Subject, body)
//	  }
//	}
//
// # Regional portals
//
// Config.Host may name any portal sharing the same platform. Logins are
// always posted to Config.AuthURL, which defaults to the canonical portal.
//
// # Helpers
//
// NewWithPassword wraps New for the common case, and Login creates a
// session and authenticates it right away.
package entclient
