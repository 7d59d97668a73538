// example_test.go: godoc examples for the arena package
//
// These examples appear in the generated documentation on pkg.go.dev
// and are executed as part of the test suite to ensure they remain valid.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package arena_test

import (
	"fmt"

	"github.com/agilira/arena"
)

// ExampleNew demonstrates basic arena creation and usage.
func ExampleNew() {
	a, err := arena.New[string](arena.Config{BitArrayLen: 8})
	if err != nil {
		panic(err)
	}

	h, err := a.Insert("hello")
	if err != nil {
		panic(err)
	}
	defer h.Release()

	if got, ok := a.Get(h.Key()); ok {
		fmt.Println(got.Value())
		got.Release()
	}

	// Output: hello
}

// ExampleHandle_Clone demonstrates sharing ownership of a single entry
// across multiple handles.
func ExampleHandle_Clone() {
	a, err := arena.New[int](arena.DefaultConfig())
	if err != nil {
		panic(err)
	}

	h1, err := a.Insert(42)
	if err != nil {
		panic(err)
	}
	h2 := h1.Clone()

	fmt.Println(h1.StrongCount())

	h1.Release()
	h2.Release()

	// Output: 2
}

// ExampleArena_Remove demonstrates taking ownership of a stored value back
// out of the arena.
func ExampleArena_Remove() {
	a, err := arena.New[string](arena.DefaultConfig())
	if err != nil {
		panic(err)
	}

	h, err := a.Insert("owned value")
	if err != nil {
		panic(err)
	}

	value, ok := a.Remove(h.Key())
	fmt.Println(ok, value)

	// Output: true owned value
}

// ExampleConfig demonstrates advanced arena configuration.
func ExampleConfig() {
	a, err := arena.New[int](arena.Config{
		BitArrayLen:   6,  // 64 slots per bucket
		MaxGrowthStep: 4,  // grow by at most 4 buckets per round
	})
	if err != nil {
		panic(err)
	}

	h, err := a.Insert(1)
	if err != nil {
		panic(err)
	}
	defer h.Release()

	fmt.Println(a.Len())

	// Output: 1
}
