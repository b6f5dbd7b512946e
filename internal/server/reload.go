package server

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Reloader rescans the output directory on a cron schedule and pushes a
// refresh event to connected clients when the data changed on disk.
type Reloader struct {
	cron *cron.Cron
}

// NewReloader registers the rescan job. The spec uses the six-field form
// with a seconds column, e.g. "*/30 * * * * *".
func NewReloader(spec string, store *Store, hub *Hub) (*Reloader, error) {
	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(spec, func() {
		changed, err := store.Reload()
		if err != nil {
			log.Printf("[ERROR] reload: %v", err)
			return
		}
		if changed {
			hub.Broadcast([]byte(`{"type":"refresh"}`))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("register reload cron %q: %w", spec, err)
	}
	return &Reloader{cron: c}, nil
}

// Start begins the schedule.
func (r *Reloader) Start() {
	r.cron.Start()
	log.Println("[INFO] reload schedule started")
}

// Stop halts the schedule and waits for a running job to finish.
func (r *Reloader) Stop() {
	<-r.cron.Stop().Done()
}
