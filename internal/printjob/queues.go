package printjob

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

// Queue is one network print queue found via mDNS, a candidate target
// for the spooler path.
type Queue struct {
	Name    string
	Host    string
	Port    int
	Service string
}

// queueServices are the mDNS service types raw-capable queues announce.
var queueServices = []string{"_pdl-datastream._tcp", "_ipp._tcp"}

// DiscoverQueues browses the local network for print queues, collecting
// answers until timeout elapses. Like the wireless scan, finding nothing
// is an empty list, not an error.
func DiscoverQueues(ctx context.Context, timeout time.Duration) ([]Queue, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		seen   = make(map[string]bool)
		queues []Queue
	)

	var wg sync.WaitGroup
	for _, service := range queueServices {
		resolver, err := zeroconf.NewResolver(nil)
		if err != nil {
			return nil, fmt.Errorf("mdns resolver: %w", err)
		}

		entries := make(chan *zeroconf.ServiceEntry)
		wg.Add(1)
		go func(service string) {
			defer wg.Done()
			for e := range entries {
				mu.Lock()
				key := e.Instance + "/" + service
				if !seen[key] {
					seen[key] = true
					queues = append(queues, Queue{
						Name:    e.Instance,
						Host:    e.HostName,
						Port:    e.Port,
						Service: service,
					})
				}
				mu.Unlock()
			}
		}(service)

		if err := resolver.Browse(ctx, service, "local.", entries); err != nil {
			// A failed Browse never closes its channel; do it here so the
			// collectors can drain and exit.
			close(entries)
			cancel()
			wg.Wait()
			return nil, fmt.Errorf("browse %s: %w", service, err)
		}
	}

	<-ctx.Done()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	sort.Slice(queues, func(i, j int) bool { return queues[i].Name < queues[j].Name })
	slog.Info("queue discovery finished", "found", len(queues))
	return queues, nil
}
