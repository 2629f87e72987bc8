// cmd/rv6tool/main.go
package main

import (
	cmd "github.com/kaist-cp/rv6-tools/internal/cli"
)

// main starts the rv6tool CLI application by delegating to the cobra root
// command. It does not take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
