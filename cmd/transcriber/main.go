package main

import "meeting-transcriber/cmd/transcriber/cmd"

func main() {
	cmd.Execute()
}
