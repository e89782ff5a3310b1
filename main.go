package main

import "media-preview-service/cmd"

func main() {
	cmd.Execute()
}
