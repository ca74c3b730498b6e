package commands

import (
	"github.com/pwaudit/pwaudit/config"
)

type PwAuditCommand struct {
	ConfigFile string `long:"config" description:"path to a YAML config file" env:"PWAUDIT_CONFIG" value-name:"PATH"`
	Debug      bool   `long:"debug" description:"enables debug logging"`
	NoColor    bool   `long:"no-color" description:"disable coloured output"`

	Breach config.Config `group:"Breach Lookup Options"`

	Check    CheckCommand    `command:"check" description:"Check the strength of a password and whether it has been breached"`
	Batch    BatchCommand    `command:"batch" description:"Check every password in one or more lists"`
	Generate GenerateCommand `command:"generate" description:"Generate random passwords, memorable passwords or passphrases"`
	Doctor   DoctorCommand   `command:"doctor" description:"Diagnose connectivity to the breach lookup service"`
	Version  VersionCommand  `command:"version" description:"Displays pwaudit version" alias:"V"`
}

var PwAudit PwAuditCommand
