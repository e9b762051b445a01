// Command barge builds C, C++, Fortran and COBOL projects described by a
// barge.json descriptor.
package main

import "github.com/barge-build/barge/cmd/barge/internal"

func main() {
	internal.Execute()
}
