// Package main is the entry point for the trojanscope CLI.
package main

import "trojanscope.dev/pkg/trojanscope/cmd"

func main() {
	cmd.Execute()
}
