package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"code.cloudfoundry.org/lager"
)

// InsecureExitCode is returned under --strict when a password is insecure.
const InsecureExitCode = 3

type CheckCommand struct {
	NoAPI  bool `long:"no-api" description:"skip the remote breach lookup"`
	Simple bool `long:"simple" description:"print only the numeric score"`
	JSON   bool `long:"json" description:"print the full verdict as JSON"`
	Strict bool `long:"strict" description:"exit with status 3 if the password is insecure"`

	Args struct {
		Password string `positional-arg-name:"PASSWORD" description:"password to check; read from STDIN when omitted"`
	} `positional-args:"yes"`
}

func (command *CheckCommand) Execute(args []string) error {
	logger := PwAudit.newLogger("check")

	cfg, err := PwAudit.loadConfig(logger)
	if err != nil {
		return err
	}

	password := command.Args.Password
	if password == "" {
		password, err = readPassword(os.Stdin)
		if err != nil {
			return err
		}
	}

	clean := newCleanup()
	client := newBreachClient(logger, cfg, !command.NoAPI)

	logger.Debug("evaluating", lager.Data{"password-length": len([]rune(password))})
	verdict := evaluate(logger, client, password)

	switch {
	case command.JSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(verdict); err != nil {
			return err
		}
	case command.Simple:
		fmt.Println(verdict.NumericScore)
	default:
		writeVerdict(os.Stdout, verdict)
	}

	if command.Strict && !verdict.IsSecure {
		clean.exit(InsecureExitCode)
	}

	return nil
}

// readPassword reads the first line of r without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
