// Command curata curates LLM-generated social media posts.
package main

import (
	"github.com/custodia-labs/curata/internal/adapters/driving/cli"
	"github.com/custodia-labs/curata/internal/app"
)

func main() {
	cli.Execute(app.Build)
}
