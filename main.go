package main

import "github.com/ytgrab/ytgrab/cmd"

func main() {
	cmd.Execute()
}
