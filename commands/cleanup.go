package commands

import (
	"log"
	"os"
	"os/signal"
	"sync"
)

// InterruptedExitCode is the status used when the user interrupts a run.
const InterruptedExitCode = 130

type cleanup struct {
	mu   sync.Mutex
	work []func()
}

func newCleanup() *cleanup {
	clean := &cleanup{}

	signalsCh := make(chan os.Signal, 1)
	signal.Notify(signalsCh, os.Interrupt)

	go func() {
		<-signalsCh
		log.SetFlags(0)
		log.Println("\ninterrupted, cleaning up...")
		clean.exit(InterruptedExitCode)
	}()

	return clean
}

func (c *cleanup) register(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.work = append(c.work, fn)
}

func (c *cleanup) run() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range c.work {
		w()
	}
}

func (c *cleanup) exit(status int) {
	c.run()
	os.Exit(status)
}
