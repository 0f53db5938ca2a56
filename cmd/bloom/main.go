package main

import "skillbloom/cmd/bloom/root"

func main() {
	root.Execute()
}
