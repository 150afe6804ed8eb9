package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	minirt "github.com/goplus/minirt/cmd/minirt/impl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := minirt.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
