package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/slatecss/slate/pkg"
)

// Version prints the version of the slate command.
type Version struct {
	Short bool `help:"Print the bare version number" short:"s"`
}

// Run executes the version command.
func (v *Version) Run(context.Context) error {
	version := strings.TrimSpace(pkg.Version)

	if v.Short {
		fmt.Println(version)

		return nil
	}

	fmt.Printf("%s %s\n", pkg.Name, version)

	return nil
}
