package main

import "github.com/smartcitydata/trafficdatasim/cmd"

func main() {
	cmd.Execute()
}
