// Package api is the HTTP client for the storage API.
//
// Each endpoint has one method taking a context. Mutating endpoints return a
// Result whose Display method yields the text to show a user: the message,
// else the structured detail message, else the raw body.
//
// A response outside the 2xx range is returned as *Error, which still carries
// the decoded Result. Callers that must tell "the server said no" apart from
// "the server was unreachable" use AsError.
//
// # Usage
//
//	c := api.New(cfg.Client)
//	items, err := c.ListEntries(ctx, "photos", "2024/summer")
//	res, err := c.Move(ctx, "photos", "a.png", "b.png")
//	fmt.Println(api.DisplayMessage(res, err))
package api
