//go:build !windows

// Package stderr redirects file descriptor 2 into the application log.
//
// libmpv and the codecs it loads print warnings straight to fd 2, which
// would draw over the review TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type capture struct {
	orig  int
	read  *os.File
	write *os.File
	done  chan struct{}
}

var (
	mu      sync.Mutex
	current *capture
)

// Start redirects fd 2 to log until Stop. Must be called before the engine
// is created. On error the program can continue with the original stderr.
func Start(log logrus.FieldLogger) error {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	c := &capture{orig: orig, read: r, write: w, done: make(chan struct{})}
	current = c

	go c.forward(log.WithField("origin", "stderr"))
	return nil
}

func (c *capture) forward(log logrus.FieldLogger) {
	defer close(c.done)
	scanner := bufio.NewScanner(c.read)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn(line)
		}
	}
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func WriteOriginal(msg string) {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = unix.Write(current.orig, []byte(msg))
}

// Stop restores fd 2 and waits for buffered lines to be logged.
func Stop() {
	mu.Lock()
	c := current
	current = nil
	mu.Unlock()
	if c == nil {
		return
	}

	_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = unix.Close(c.orig)
	c.write.Close()
	<-c.done
	c.read.Close()
}
