package internal

import "fmt"

// splitProgramArgs separates "[target] -- args..." where dash is the
// position of "--" reported by cobra, or -1.
func splitProgramArgs(args []string, dash int) (target, program []string, err error) {
	if dash >= 0 {
		target, program = args[:dash], args[dash:]
	} else {
		target = args
	}
	if len(target) > 1 {
		return nil, nil, fmt.Errorf("expected at most one target before --, got %d arguments", len(target))
	}
	return target, program, nil
}
