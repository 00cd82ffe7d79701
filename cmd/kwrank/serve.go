package main

import (
	"fmt"

	kwhttp "github.com/fwojciec/kwrank/http"
)

// Run executes the serve command. It blocks until the context is canceled,
// then shuts the server down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := kwhttp.NewServer(c.Origin)
	srv.Addr = c.Addr
	srv.Analyzer = deps.Analyzer
	srv.Logger = deps.Logger

	if err := srv.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", srv.URL())

	<-deps.Ctx.Done()
	deps.Logger.Info("shutdown signal received")
	return srv.Close()
}
