// Package noop has an Interpreter that runs nothing.
package noop

import (
	"context"
	"log"

	"github.com/Comcast/certres/wf"
)

// Interpreter is a wf.Interpreter which passes every script without
// running it.
type Interpreter struct {
	// Silent, if true, will suppress warning log messages.
	Silent bool
}

func (i *Interpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	if !i.Silent {
		log.Printf("warning: Using noop Interpreter for compilation")
	}
	return nil, nil
}

func (i *Interpreter) Exec(ctx context.Context, env map[string]interface{}, code interface{}, compiled interface{}) (*wf.Execution, error) {
	if !i.Silent {
		log.Printf("warning: Using noop Interpreter for execution")
	}
	return &wf.Execution{}, nil
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}
