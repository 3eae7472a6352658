// pattern: Imperative Shell
package instance

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const healthTimeout = 2 * time.Second

// ErrNotRunning is returned by Discover when no instance holds the lock.
var ErrNotRunning = errors.New("no running splitkit instance found (start splitkit with touch.enabled first)")

// Endpoint locates a running instance's touch bridge.
type Endpoint struct {
	Addr string // host:port
}

// BaseURL is the bridge's HTTP root.
func (e Endpoint) BaseURL() string {
	return "http://" + e.Addr
}

// TouchURL is the websocket endpoint pointer events are streamed to.
func (e Endpoint) TouchURL() string {
	return "ws://" + e.Addr + "/touch"
}

// Discover finds the running instance in dataDir: the lock must be held,
// the address file present and the health endpoint answering.
func Discover(dataDir string) (Endpoint, error) {
	fl := flock.New(filepath.Join(dataDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return Endpoint{}, fmt.Errorf("failed to check lock: %w", err)
	}
	if locked {
		_ = fl.Unlock()
		return Endpoint{}, ErrNotRunning
	}

	data, err := os.ReadFile(filepath.Join(dataDir, addrFileName))
	if err != nil {
		return Endpoint{}, fmt.Errorf("splitkit instance detected but no touch bridge address (is touch.enabled set?): %w", err)
	}
	addr := strings.TrimSpace(string(data))
	if addr == "" {
		return Endpoint{}, fmt.Errorf("splitkit address file is empty (try 'splitkit cleanup')")
	}

	ep := Endpoint{Addr: addr}
	client := &http.Client{Timeout: healthTimeout}
	resp, err := client.Get(ep.BaseURL() + "/api/health")
	if err != nil {
		return Endpoint{}, fmt.Errorf("splitkit instance not responding (try 'splitkit cleanup'): %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Endpoint{}, fmt.Errorf("splitkit health check failed (status %d)", resp.StatusCode)
	}

	return ep, nil
}
