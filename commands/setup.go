package commands

import (
	"net/http"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager"
	"github.com/hashicorp/go-multierror"
	"github.com/kardianos/osext"

	"github.com/pwaudit/pwaudit/breach"
	"github.com/pwaudit/pwaudit/complexity"
	"github.com/pwaudit/pwaudit/config"
	"github.com/pwaudit/pwaudit/denylist"
	"github.com/pwaudit/pwaudit/net"
	"github.com/pwaudit/pwaudit/score"
)

const denylistFileName = "breached_passwords.txt"

func (command *PwAuditCommand) newLogger(component string) lager.Logger {
	if command.NoColor || os.Getenv("NO_COLOR") != "" {
		disableColors()
	}

	logger := lager.NewLogger("pwaudit")

	if command.Debug {
		logger.RegisterSink(lager.NewWriterSink(os.Stderr, lager.DEBUG))
	} else {
		logger.RegisterSink(lager.NewWriterSink(os.Stderr, lager.ERROR))
	}

	return logger.Session(component)
}

// loadConfig layers the config file and then the command-line flags over the
// defaults.
func (command *PwAuditCommand) loadConfig(logger lager.Logger) (config.Config, error) {
	cfg := config.Default()
	cfg.UserAgent = "pwaudit/" + version

	if command.ConfigFile != "" {
		fileCfg, err := config.Load(command.ConfigFile)
		if err != nil {
			logger.Error("failed-to-load-config-file", err)
			return config.Config{}, err
		}

		if err := cfg.Merge(fileCfg); err != nil {
			return config.Config{}, err
		}
	}

	if err := cfg.Merge(&command.Breach); err != nil {
		return config.Config{}, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		var result *multierror.Error
		for _, err := range errs {
			result = multierror.Append(result, err)
		}
		return config.Config{}, result
	}

	if cfg.DenylistPath == "" {
		cfg.DenylistPath = defaultDenylistPath()
	}

	logger.Debug("loaded-config", lager.Data{
		"api-url":       cfg.APIURL,
		"max-retries":   cfg.Retries(),
		"denylist-path": cfg.DenylistPath,
	})

	return cfg, nil
}

// defaultDenylistPath keeps the store next to the executable so that every
// run of the same installation shares it.
func defaultDenylistPath() string {
	dir, err := osext.ExecutableFolder()
	if err != nil {
		return denylistFileName
	}

	return filepath.Join(dir, denylistFileName)
}

func newBreachClient(logger lager.Logger, cfg config.Config, useRemote bool) *breach.Client {
	cache := denylist.NewCache(cfg.DenylistPath)
	if err := cache.Load(logger); err != nil {
		logger.Error("failed-to-load-denylist", err)
	}

	return breach.NewClient(
		cfg.BreachConfig(useRemote),
		&http.Client{},
		cache,
		breach.WithBackoffPolicy(cfg.BackoffPolicy()),
		breach.WithPacer(net.NewPacer(cfg.RequestsPerSecond)),
	)
}

func evaluate(logger lager.Logger, client *breach.Client, password string) score.Verdict {
	result := complexity.Analyze(password)

	var breachResult breach.Result
	if password == "" {
		breachResult = breach.Result{
			Source:  breach.SourceDisabled,
			Message: "empty password; nothing to look up",
		}
	} else {
		breachResult = client.Check(logger, password)
	}

	return score.Evaluate(password, result, breachResult)
}
