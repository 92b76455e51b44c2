package schedule

import (
	"log"
	"time"
)

const (
	pollInterval = 30 * time.Second
	errorBackoff = 60 * time.Second
)

// ScheduleSource lists the IDs of upcoming schedule entries. The calendar
// package provides the live implementation.
type ScheduleSource func() ([]string, error)

// StartPoller watches the schedule set and broadcasts when it changes.
func StartPoller(source ScheduleSource) {
	go func() {
		lastHash := ""
		for {
			ids, err := source()
			if err != nil {
				log.Printf("schedule poll failed, backing off: %v", err)
				time.Sleep(errorBackoff)
				continue
			}

			if h := hashIDs(ids); h != lastHash {
				if lastHash != "" {
					NotifyScheduleUpdate()
				}
				lastHash = h
			}

			time.Sleep(pollInterval)
		}
	}()
}
