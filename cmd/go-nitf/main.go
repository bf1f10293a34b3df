package main

import "github.com/deploymenttheory/go-nitf/cmd"

func main() {
	cmd.Execute()
}
