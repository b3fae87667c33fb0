package unwind_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/baxromumarov/unwind"
)

func ExampleRun() {
	err := unwind.Run(context.Background(), func(ctx context.Context, s *unwind.Scope) error {
		_ = s.OnExit(func() error {
			fmt.Println("cleanup")
			return nil
		})
		fmt.Println("work")
		return nil
	})
	if err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// work
	// cleanup
}

func ExampleScope_OnError() {
	err := unwind.Run(context.Background(), func(ctx context.Context, s *unwind.Scope) error {
		_ = s.OnError(func() error {
			fmt.Println("rolling back")
			return nil
		})
		_ = s.OnExit(func() error {
			fmt.Println("closing")
			return nil
		})
		return errors.New("insert failed")
	})
	fmt.Println(err)
	// Output:
	// closing
	// rolling back
	// insert failed
}

func ExampleRunContext() {
	err := unwind.RunContext(context.Background(), func(ctx context.Context) error {
		_ = unwind.OnExit(ctx, func() error {
			fmt.Println("cleanup")
			return nil
		})
		fmt.Println("work")
		return nil
	})
	if err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// work
	// cleanup
}

func ExampleAdd() {
	file := unwind.ResourceOf(
		func(ctx context.Context) (string, error) {
			fmt.Println("open")
			return "handle", nil
		},
		func(ctx context.Context, cause error) error {
			fmt.Println("close (error in flight:", cause != nil, ")")
			return nil
		},
	)

	err := unwind.Run(context.Background(), func(ctx context.Context, s *unwind.Scope) error {
		h, err := unwind.Add(s, file)
		if err != nil {
			return err
		}
		fmt.Println("using", h)
		return nil
	})
	if err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// open
	// using handle
	// close (error in flight: false )
}

func ExampleRunResult() {
	v, err := unwind.RunResult(context.Background(), func(ctx context.Context, s *unwind.Scope) (int, error) {
		return 42, nil
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("result:", v)
	// Output: result: 42
}
