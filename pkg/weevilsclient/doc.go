// Package weevilsclient provides the main entry point for creating Weevils
// API clients that implement the weevils.Client interface.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/weevils-io/weevils-go/pkg/weevils"
//	  "github.com/weevils-io/weevils-go/pkg/weevilsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Reads WEEVILS_API_TOKEN and, optionally, WEEVILS_API_URL.
//	  cli, err := weevilsclient.FromEnv()
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with explicit settings:
//	  cli, err = weevilsclient.New(&weevils.Config{
//	    APIToken: "...",
//	    APIURL:   weevils.SandboxAPIURL,
//	  })
//
//	  github, err := cli.Github(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  repo, err := github.Repos().GetByName(ctx, "carlio", "django-flows")
//	  if err != nil { log.Fatal(err) }
//
//	  lint, err := cli.Weevils().Instance(ctx, "lint")
//	  if err != nil { log.Fatal(err) }
//
//	  job, err := lint.Run(ctx, repo.ID)
//	  if err != nil { log.Fatal(err) }
//	  _ = job
//	}
//
// Acting as a user
//
// Login switches the client, and every sub-client obtained from it, to a
// user token. Become returns a separate client for the user and leaves the
// original untouched:
//
//	alice := cli.Become(aliceToken)
//	me, err := alice.Me(ctx)
package weevilsclient
