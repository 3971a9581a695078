package main

import "github.com/cmms-platform/cmms-service/cmd"

func main() {
	cmd.Execute()
}
