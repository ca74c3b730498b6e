package commands

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"code.cloudfoundry.org/lager"
	"github.com/hashicorp/go-multierror"

	"github.com/pwaudit/pwaudit/batch"
	"github.com/pwaudit/pwaudit/score"
)

type BatchCommand struct {
	Files  []string `short:"f" long:"file" required:"true" description:"password list, archive or directory to check; may be repeated" value-name:"FILE"`
	NoAPI  bool     `long:"no-api" description:"skip the remote breach lookup"`
	Strict bool     `long:"strict" description:"exit with status 3 if any password is insecure"`
}

func (command *BatchCommand) Execute(args []string) error {
	logger := PwAudit.newLogger("batch")

	cfg, err := PwAudit.loadConfig(logger)
	if err != nil {
		return err
	}

	clean := newCleanup()

	tempDir, err := ioutil.TempDir("", "pwaudit-cli")
	if err != nil {
		return err
	}
	clean.register(func() { os.RemoveAll(tempDir) })
	defer os.RemoveAll(tempDir)

	client := newBreachClient(logger, cfg, !command.NoAPI)
	reader := batch.NewReader(tempDir)

	var (
		verdicts []score.Verdict
		fileErrs *multierror.Error
		insecure int
	)

	for _, file := range command.Files {
		passwords, err := reader.Read(logger, file)
		if err != nil {
			fileErrs = multierror.Append(fileErrs, err)
		}

		if len(passwords) == 0 {
			continue
		}

		fmt.Printf("%s %s: %d password(s)\n", bold("Checking"), file, len(passwords))

		for i, password := range passwords {
			logger.Debug("evaluating", lager.Data{"file": file, "index": i + 1})

			verdict := evaluate(logger, client, password)
			verdicts = append(verdicts, verdict)
			if !verdict.IsSecure {
				insecure++
			}

			writeBrief(os.Stdout, i+1, len(passwords), password, verdict)
		}
	}

	if fileErrs != nil {
		for _, err := range fileErrs.Errors {
			fmt.Fprintln(os.Stderr, red("[ERROR]"), err)
		}
	}

	if len(verdicts) == 0 && fileErrs != nil {
		return errors.New("no password list could be read")
	}

	writeSummary(os.Stdout, batch.Summarize(verdicts))

	if command.Strict && insecure > 0 {
		clean.exit(InsecureExitCode)
	}

	return nil
}
