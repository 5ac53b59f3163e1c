package main

import (
	"github.com/mvp-joe/org-mcp/internal/cli"
)

func main() {
	cli.Execute()
}
