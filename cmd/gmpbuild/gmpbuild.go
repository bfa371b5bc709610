package main

import "github.com/llarhub/gmp/cmd/gmpbuild/internal"

func main() {
	internal.Execute()
}
