// Package pipeline threads a value through an ordered chain of steps.
//
// Each Step transforms a value of type T and hands its output to the next
// step. Steps run synchronously, left to right, in the order they held when
// Process was called. The first step that returns an error stops the run;
// that error reaches the caller unchanged and no later step executes.
//
// Steps carry their own advisory cancellation flag (contract.Cancellable).
// The pipeline never reads or sets it: a controller flips the flag and the
// step checks it inside its own Process.
//
// A Pipeline is not safe for concurrent use. Mutate it between calls to
// Process, or guard it externally.
//
// # Usage
//
//	p := pipeline.New[int](pipeline.WithName("score"))
//	p.Add(pipeline.Func(func(n int) (int, error) { return n * 2, nil }))
//	p.Add(pipeline.Func(func(n int) (int, error) { return n + 10, nil }))
//	out, err := p.Process(5) // 20
package pipeline
