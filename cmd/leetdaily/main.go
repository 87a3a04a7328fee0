package main

import (
	"context"

	"github.com/WomB0ComB0/leetcode/cmd/leetdaily/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
