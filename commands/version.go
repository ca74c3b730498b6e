package commands

import "fmt"

type VersionCommand struct{}

var (
	// overridden at build time with -ldflags "-X github.com/pwaudit/pwaudit/commands.version=..."
	version = "dev"
)

func (command *VersionCommand) Execute(args []string) error {
	fmt.Println(version)

	return nil
}
