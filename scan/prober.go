package scan

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Prober makes one connection attempt per target, all at the same time.
type Prober struct {
	dialer      Dialer
	parallelism int
}

// NewProber returns a Prober using dialer, or a NetDialer when dialer is nil. A
// parallelism of zero or less starts every probe at once.
func NewProber(dialer Dialer, parallelism int) *Prober {
	if dialer == nil {
		dialer = &NetDialer{}
	}
	return &Prober{
		dialer:      dialer,
		parallelism: parallelism,
	}
}

type dialResult struct {
	conn net.Conn
	err  error
}

// Probe returns one Result per target, in the order of targets, once every probe has
// finished. Each probe gets its own timeout.
func (p *Prober) Probe(ctx context.Context, host string, targets *TargetSet, timeout time.Duration) []Result {

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	list := targets.Targets()
	results := make([]Result, len(list))

	g := &errgroup.Group{}
	if p.parallelism > 0 {
		g.SetLimit(p.parallelism)
	}

	startTime := time.Now()
	logrus.Debugf("Probing %d targets on %s with a %s timeout...", len(list), host, timeout)

	for i, target := range list {
		i, target := i, target
		g.Go(func() error {
			results[i] = Result{
				Port:     target.Port,
				Protocol: target.Protocol,
				Open:     p.probe(ctx, host, target, timeout),
			}
			return nil
		})
	}

	_ = g.Wait()

	logrus.Debugf("Probed %s in %s", host, time.Since(startTime))

	return results
}

func (p *Prober) probe(ctx context.Context, host string, target Target, timeout time.Duration) bool {

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := Endpoint(target.Protocol, host, target.Port)
	address := net.JoinHostPort(host, strconv.Itoa(target.Port))

	done := make(chan dialResult, 1)
	go func() {
		conn, err := p.dialer.DialContext(ctx, target.Protocol, address)
		done <- dialResult{conn: conn, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			logrus.Debugf("%s is closed: %s", endpoint, r.err)
			return false
		}
		if r.conn != nil {
			if err := r.conn.Close(); err != nil {
				logrus.Debugf("Error closing %s: %s", endpoint, err)
			}
		}
		logrus.Debugf("%s is open", endpoint)
		return true
	case <-ctx.Done():
		// the dial may still succeed after we have given up on it
		go func() {
			if r := <-done; r.conn != nil {
				r.conn.Close()
			}
		}()
		logrus.Debugf("%s is closed: %s", endpoint, ctx.Err())
		return false
	}
}
