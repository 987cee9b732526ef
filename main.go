package main

import "github.com/shouni/pattern-scan-on-go/cmd"

func main() {
	cmd.Execute()
}
