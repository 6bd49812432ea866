// Command hash-generator prints bcrypt hashes for passwords given as
// arguments, for operators who insert accounts directly with SQL.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: hash-generator [-cost N] password...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, password := range flag.Args() {
		if err := domain.ValidatePassword(password); err != nil {
			fmt.Fprintf(os.Stderr, "skipping password: %v\n", err)
			failed = true
			continue
		}
		hash, err := auth.HashPassword(password, *cost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			failed = true
			continue
		}
		fmt.Println(hash)
	}
	if failed {
		os.Exit(1)
	}
}
