package main

import "github.com/guifav/iris-api/cmd"

func main() {
	cmd.Execute()
}
