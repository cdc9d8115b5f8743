package main

import (
	"errors"
	"testing"
)

type fakeProgram struct {
	err    error
	closed int
}

func (p *fakeProgram) Run() error { return p.err }
func (p *fakeProgram) Close()     { p.closed++ }

func TestServeClosesOnEveryExit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"clean exit", nil, 0},
		{"run failure", errors.New("load map 1: boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProgram{err: tt.err}
			if got := serve(p); got != tt.code {
				t.Errorf("serve = %d, want %d", got, tt.code)
			}
			if p.closed != 1 {
				t.Errorf("Close called %d times, want 1", p.closed)
			}
		})
	}
}
