package main

import "trendsync/cmd"

func main() {
	cmd.Execute()
}
