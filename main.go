package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/t-kuni/ngpkgsync/cmd"
)

func main() {
	godotenv.Load(".env")

	err := cmd.NewRootCommand().CobraCommand.Execute()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
