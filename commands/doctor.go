package commands

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"code.cloudfoundry.org/lager"

	"github.com/pwaudit/pwaudit/config"
	"github.com/pwaudit/pwaudit/denylist"
)

// probePrefix is the range of the SHA-1 of "password"; it always exists.
const probePrefix = "5BAA6"

type DoctorCommand struct{}

type probe struct {
	name string
	run  func(lager.Logger, config.Config) (bool, string)
}

func (command *DoctorCommand) Execute(args []string) error {
	logger := PwAudit.newLogger("doctor")

	cfg, err := PwAudit.loadConfig(logger)
	if err != nil {
		return err
	}

	probes := []probe{
		{name: "proxy settings", run: probeProxy},
		{name: "TLS handshake", run: probeTLS},
		{name: "range endpoint", run: probeRange},
		{name: "breach cache", run: probeCache},
	}

	passed, failed := 0, 0
	for _, p := range probes {
		ok, detail := p.run(logger.Session("probe", lager.Data{"probe": p.name}), cfg)
		if ok {
			passed++
			fmt.Printf("%s %s: %s\n", green("[PASS]"), p.name, detail)
		} else {
			failed++
			fmt.Printf("%s %s: %s\n", red("[FAIL]"), p.name, detail)
		}
	}

	fmt.Println()
	fmt.Printf("%d passed, %d failed\n", passed, failed)

	if failed > 0 {
		fmt.Println("Checks keep working without the range service; use --no-api to skip it.")
	}

	return nil
}

func probeProxy(logger lager.Logger, cfg config.Config) (bool, string) {
	req, err := http.NewRequest(http.MethodGet, cfg.APIURL, nil)
	if err != nil {
		return false, err.Error()
	}

	proxy, err := http.ProxyFromEnvironment(req)
	if err != nil {
		return false, fmt.Sprintf("invalid proxy configuration: %s", err)
	}

	if proxy == nil {
		return true, "no proxy configured"
	}

	fmt.Fprintln(os.Stderr, yellow("[WARN]"), "requests go through a proxy; disable it if lookups fail")
	return true, fmt.Sprintf("using %s", proxy.Redacted())
}

func probeTLS(logger lager.Logger, cfg config.Config) (bool, string) {
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return false, err.Error()
	}

	if u.Scheme != "https" {
		return true, fmt.Sprintf("skipped for %s", u.Scheme)
	}

	host := u.Host
	if u.Port() == "" {
		host = net.JoinHostPort(u.Hostname(), "443")
	}

	dialer := &net.Dialer{Timeout: cfg.Timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", host, &tls.Config{ServerName: u.Hostname()})
	if err != nil {
		logger.Error("failed", err)
		return false, err.Error()
	}
	defer conn.Close()

	return true, fmt.Sprintf("handshake with %s succeeded, certificate valid", u.Hostname())
}

func probeRange(logger lager.Logger, cfg config.Config) (bool, string) {
	client := newBreachClient(logger, cfg, true)

	start := time.Now()
	if err := client.Ping(logger, probePrefix); err != nil {
		return false, err.Error()
	}

	return true, fmt.Sprintf("reachable in %s", time.Since(start).Round(time.Millisecond))
}

func probeCache(logger lager.Logger, cfg config.Config) (bool, string) {
	cache := denylist.NewCache(cfg.DenylistPath)
	if err := cache.Load(logger); err != nil {
		return false, err.Error()
	}

	return true, fmt.Sprintf("%s (%d entries)", cache.Path(), cache.Len())
}
