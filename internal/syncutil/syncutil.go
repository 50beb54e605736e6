// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package syncutil contains useful synchronization primitives.
package syncutil

import "sync"

// LimitedGroup runs functions in goroutines, at most limit of them at a time.
// The zero value is not usable, use [NewLimitedGroup].
type LimitedGroup struct {
	wg  sync.WaitGroup
	sem chan struct{}
}

// NewLimitedGroup returns a LimitedGroup running at most limit goroutines at
// once. A limit below one is treated as one.
func NewLimitedGroup(limit int) *LimitedGroup {
	return &LimitedGroup{sem: make(chan struct{}, max(limit, 1))}
}

// Go calls f in a new goroutine. It blocks while the limit is reached.
func (g *LimitedGroup) Go(f func()) {
	g.sem <- struct{}{}
	g.wg.Add(1)
	go func() {
		defer func() {
			<-g.sem
			g.wg.Done()
		}()
		f()
	}()
}

// Wait blocks until all functions started with Go have returned.
func (g *LimitedGroup) Wait() { g.wg.Wait() }
