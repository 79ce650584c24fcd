package main

import "github.com/mibcs/clubsite/cmd/server/cmd"

func main() {
	cmd.Execute()
}
