// Command churn generates randomized insert, update and delete traffic
// against a database so that change-data-capture pipelines have events to
// stream.
package main

import "github.com/marshallshelly/pebble-churn/cmd/churn/commands"

func main() {
	commands.Execute()
}
