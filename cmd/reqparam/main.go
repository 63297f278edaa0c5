// reqparam CLI - validate request parameters against route contracts
package main

import "github.com/getmockd/reqparam/pkg/cli"

func main() {
	cli.Execute()
}
