package vcs_test

import (
	"context"
	"fmt"
	"log"

	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/branchops/branchsync/vcs"
)

// ExampleOpen opens the repository at the current directory and reports
// the active branch.
func ExampleOpen() {
	repo, err := vcs.Open(context.Background(), &vcs.Options{
		FS: fsb.NewOSFS("."),
	})
	if err != nil {
		log.Fatal(err)
	}

	branch, err := repo.CurrentBranch(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(branch)
}

// ExampleRepo_Deficit lists the commits a target branch is missing from
// the source branch, oldest first.
func ExampleRepo_Deficit() {
	ctx := context.Background()

	repo, err := vcs.Open(ctx, &vcs.Options{FS: fsb.NewOSFS(".")})
	if err != nil {
		log.Fatal(err)
	}

	deficit, err := repo.Deficit(ctx, "main", "origin/develop")
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range deficit {
		fmt.Printf("%s %s\n", c.ShortHash(), c.Subject)
	}
}
