// Package jobs provides scheduled background tasks for the refill shop.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field, so
// schedules look like "0 */5 * * * *".
//
// # Available Jobs
//
// 1. StalePrintJobMonitor - warns about print jobs left Dispatched past a threshold
// and exports their count as the refill_stale_print_jobs gauge
// 2. PickupBacklogReport - logs how many orders wait for pickup and how many
// customers were not notified yet
//
// # Usage
//
//	manager := jobs.NewJobManager()
//	manager.Add("stale print job monitor", monitor)
//	manager.Add("pickup backlog report", report)
//
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// Both jobs read through the query handlers. With the in-memory store those
// return queries.ErrReadModelUnavailable, which is logged at debug level only.
// A failed start stops the jobs that were already running.
package jobs
