// Package browser is the interactive client of the storage API.
//
// A Controller owns the navigation State (a bucket and a folder inside it),
// fetches listings through the API and hands each one to a View as a Grid of
// Cards. Cards carry their Entry and run menu actions on it directly.
//
// Mutating operations share one post-condition: the server's message, or
// its raw body when there is none, is shown through the Prompter, and the
// listing is fetched again exactly once. Deleting or creating a bucket
// returns to the bucket list instead. When the server cannot be reached the
// error is shown and returned, and nothing is refreshed.
//
// Prompts that are cancelled or answered with blank text abort the
// operation before any request is made. On a terminal a lone "-" cancels.
//
// Session, LinePrompter and TerminalView put the controller on a terminal:
//
//	in := browser.NewInput(os.Stdin)
//	ctrl := browser.NewController(client, browser.NewTerminalView(os.Stdout), browser.NewLinePrompter(in, os.Stdout), logger)
//	err := browser.NewSession(ctrl, in, os.Stdout).Run(ctx)
package browser
