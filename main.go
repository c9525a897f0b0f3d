package main

import (
	"os"

	"github.com/jpillora/overseer"

	"github.com/benedict-erwin/blog-service/cmd"

	_ "github.com/benedict-erwin/blog-service/http/route"
)

// main starts the application, under overseer for zero-downtime restarts
// when serving or running the worker
func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "serve":
			// HTTP server with overseer (:3000)
			overseer.Run(overseer.Config{
				Program: func(state overseer.State) {
					cmd.Execute()
				},
				Address:          ":3000",
				RestartSignal:    overseer.SIGUSR2,
				TerminateTimeout: 30,
			})
			return
		case "worker":
			if len(os.Args) >= 3 && os.Args[2] == "start" {
				// Worker with overseer (:3001)
				overseer.Run(overseer.Config{
					Program: func(state overseer.State) {
						cmd.Execute()
					},
					Address:          ":3001",
					RestartSignal:    overseer.SIGUSR2,
					TerminateTimeout: 30,
				})
				return
			}
		}
	}

	// dev, CLI commands and everything else run without overseer
	cmd.Execute()
}
