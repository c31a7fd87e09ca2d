/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package ecmascript provides an ECMAScript-compatible interpreter
// for well-formedness scripts.
package ecmascript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"time"

	"github.com/Comcast/certres/wf"

	"github.com/dop251/goja"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Exec if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)
)

// Interpreter implements wf.Interpreter using Goja, which is a Go
// implementation of ECMAScript 5.1+.
//
// See https://github.com/dop251/goja.
type Interpreter struct {

	// Testing is used to expose or hide some runtime
	// capabilities.
	Test bool

	// Extended adds some additional properties.
	Extended bool
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func wrapSrc(src string) string {
	return fmt.Sprintf("(function() {\n%s\n}());\n", src)
}

func AsSource(src interface{}) (code string, err error) {
	switch vv := src.(type) {
	case string:
		code = vv
		return
	default:
		err = errors.New(fmt.Sprintf("bad ECMAScript source (%T)", src))
		return
	}
}

// Compile calls goja.Compile.  This step is optional.
func (i *Interpreter) Compile(ctx context.Context, src interface{}) (interface{}, error) {
	code, err := AsSource(src)
	if err != nil {
		return nil, err
	}

	code = wrapSrc(code)

	obj, err := goja.Compile("", code, true)
	if err != nil {
		return nil, errors.New(err.Error() + ": " + code)
	}

	return obj, nil
}

func protest(o *goja.Runtime, x interface{}) {
	panic(o.ToValue(x))
}

func export(x interface{}) interface{} {
	if v, is := x.(goja.Value); is {
		return v.Export()
	}
	return x
}

// Exec implements the wf.Interpreter method of the same name.
//
// The source is the body of a function.  What it returns is the
// Execution's Result; returning false fails the predicate.
//
// The following properties are available from the runtime at _.
//
//	message: the view of the message being checked (wf.MessageView).
//	complain(s): fail the predicate with the given reason.
//
// Extended properties (enabled by interpreter's Extended property):
//
//	contains(xs, x): whether the array contains a value equal to x.
//	json(x): render x as JSON.
//
// Testing properties (enabled by the interpreter's Test property):
//
//	sleep(ms): sleep for the given number of milliseconds.
//	log(x): log x as JSON.
func (i *Interpreter) Exec(ctx context.Context, env map[string]interface{}, src interface{}, compiled interface{}) (*wf.Execution, error) {
	exe := &wf.Execution{}

	var p *goja.Program
	if compiled == nil {
		var err error
		if compiled, err = i.Compile(ctx, src); err != nil {
			return exe, err
		}
	}
	var is bool
	if p, is = compiled.(*goja.Program); !is {
		return exe, fmt.Errorf("ECMAScript bad compilation: %T %#v", compiled, compiled)
	}

	// Scripts can modify what they are given, and we don't want
	// any side effects.  So:
	x, err := canonicalize(env)
	if err != nil {
		return nil, err
	}
	envCopy, is := x.(map[string]interface{})
	if !is {
		envCopy = map[string]interface{}{}
	}
	envCopy["ctx"] = ctx

	o := goja.New()

	o.Set("_", envCopy)

	envCopy["complain"] = func(x interface{}) interface{} {
		x = export(x)
		s, is := x.(string)
		if !is {
			js, err := json.Marshal(&x)
			if err != nil {
				protest(o, err.Error())
			}
			s = string(js)
		}
		exe.Complain(s)
		return nil
	}

	if i.Extended {
		envCopy["contains"] = func(xs, x interface{}) interface{} {
			xs, x = export(xs), export(x)
			ys, is := xs.([]interface{})
			if !is {
				protest(o, "not an array")
			}
			want, err := canonicalize(x)
			if err != nil {
				protest(o, err.Error())
			}
			for _, y := range ys {
				if got, err := canonicalize(y); err == nil && reflect.DeepEqual(got, want) {
					return true
				}
			}
			return false
		}

		envCopy["json"] = func(x interface{}) interface{} {
			x = export(x)
			js, err := json.Marshal(&x)
			if err != nil {
				protest(o, err.Error())
			}
			return string(js)
		}
	}

	if i.Test {
		envCopy["sleep"] = func(n interface{}) interface{} {
			n = export(n)
			ms, is := n.(int64)
			if !is {
				panic(fmt.Sprintf("a %T is not an %T", n, ms))
			}
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return nil
		}

		envCopy["log"] = func(x interface{}) interface{} {
			x = export(x)
			js, err := json.Marshal(&x)
			if err != nil {
				log.Println("goja.log (can't marshal: " + err.Error() + ")")
			} else {
				log.Println(string(js))
			}
			return x
		}
	}

	// We want to make sure that the following goroutine is
	// terminated as soon as possible.
	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		// If this Exec method calls cancel() after RunProgram
		// returns, then we'll never see this
		// InterruptedMessage, which is actually the behavior
		// we want.  In this case, we weren't actually interrupted.
		o.Interrupt(InterruptedMessage)
	}()

	v, err := RunProgram(o, p)
	cancel()

	if err != nil {
		if _, is := err.(*goja.InterruptedError); is {
			return nil, Interrupted
		}
		return nil, err
	}

	switch vv := v.Export().(type) {
	case *goja.InterruptedError:
		return nil, vv
	case nil:
	default:
		if exe.Result, err = canonicalize(vv); err != nil {
			return nil, fmt.Errorf("script result: %w", err)
		}
	}

	return exe, nil
}

// canonicalize is an abomination
func canonicalize(x interface{}) (interface{}, error) {
	js, err := json.Marshal(&x)
	if err != nil {
		return nil, err
	}
	var y interface{}
	if err = json.Unmarshal(js, &y); err != nil {
		return nil, err
	}
	return y, nil
}

func RunProgram(o *goja.Runtime, p *goja.Program) (v goja.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	return o.RunProgram(p)
}
