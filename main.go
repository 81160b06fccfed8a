package main

import "github.com/kozaktomas/contact-album/cmd"

func main() {
	cmd.Execute()
}
