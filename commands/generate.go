package commands

import (
	"fmt"
	"os"

	"github.com/pwaudit/pwaudit/generator"
)

type GenerateCommand struct {
	Length    int  `short:"l" long:"length" default:"16" description:"length of each password (8 to 64)" value-name:"N"`
	Count     int  `short:"c" long:"count" default:"1" description:"number of passwords to generate (1 to 20)" value-name:"N"`
	NoUpper   bool `long:"no-upper" description:"leave out uppercase letters"`
	NoDigits  bool `long:"no-digits" description:"leave out digits"`
	NoSpecial bool `long:"no-special" description:"leave out special characters"`

	Memorable    bool   `long:"memorable" description:"join dictionary words instead of random characters"`
	Words        int    `long:"words" default:"3" description:"number of words in a memorable password" value-name:"N"`
	Separator    string `long:"separator" default:"-" description:"separator between memorable words" value-name:"SEP"`
	NoCapitalize bool   `long:"no-capitalize" description:"keep memorable words lowercase"`
	NoNumber     bool   `long:"no-number" description:"do not append a number to memorable passwords"`

	Passphrase int `long:"passphrase" description:"generate a passphrase of this many words" value-name:"WORDS"`

	Simple bool `long:"simple" description:"print only the generated passwords"`
	NoAPI  bool `long:"no-api" description:"skip the remote breach lookup when rating generated passwords"`
}

func (command *GenerateCommand) Execute(args []string) error {
	logger := PwAudit.newLogger("generate")

	passwords, err := command.generate()
	if err != nil {
		return err
	}

	if command.Simple {
		for _, password := range passwords {
			fmt.Println(password)
		}
		return nil
	}

	cfg, err := PwAudit.loadConfig(logger)
	if err != nil {
		return err
	}

	client := newBreachClient(logger, cfg, !command.NoAPI)

	for i, password := range passwords {
		if i > 0 {
			fmt.Println()
		}

		fmt.Printf("%s %s\n\n", bold(fmt.Sprintf("%d.", i+1)), password)
		writeVerdict(os.Stdout, evaluate(logger, client, password))
	}

	return nil
}

func (command *GenerateCommand) generate() ([]string, error) {
	if command.Count < generator.MinCount || command.Count > generator.MaxCount {
		return nil, generator.ErrCount
	}

	var next func() (string, error)

	switch {
	case command.Passphrase > 0:
		next = func() (string, error) {
			return generator.Passphrase(command.Passphrase)
		}
	case command.Memorable:
		opts := generator.MemorableOptions{
			Words:      command.Words,
			Capitalize: !command.NoCapitalize,
			Number:     !command.NoNumber,
			Separator:  command.Separator,
		}
		next = func() (string, error) {
			return generator.Memorable(opts)
		}
	default:
		return generator.GenerateMany(command.Count, generator.Policy{
			Length:  command.Length,
			Upper:   !command.NoUpper,
			Digits:  !command.NoDigits,
			Special: !command.NoSpecial,
		})
	}

	passwords := make([]string, 0, command.Count)
	for i := 0; i < command.Count; i++ {
		password, err := next()
		if err != nil {
			return nil, err
		}
		passwords = append(passwords, password)
	}

	return passwords, nil
}
