package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailhdr/cmd/hdrinspect/cmd"
	_ "github.com/zostay/go-mailhdr/header/encoding"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
