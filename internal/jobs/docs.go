// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// NotificationRelayJob runs every second and hands pending rows of the
// notification outbox to the notifier. Rows are written by the unit of work
// in the same transaction as the order change that raised them, so a
// notification is sent at least once for every committed transition.
//
// Several replicas may run the relay against one database. Each batch is
// claimed with SELECT ... FOR UPDATE SKIP LOCKED and a lease, so a row is
// handed to one relay at a time. A relay that dies mid-batch leaves its rows
// to be picked up again once the lease expires.
//
// # Usage
//
//	relayJob, err := jobs.NewNotificationRelayJob(&dispatchHandler, 100, 5, logger)
//	if err != nil {
//		log.Fatal("Invalid relay settings:", err)
//	}
//
//	jobManager := jobs.NewJobManager(relayJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Relay errors are logged and the batch is retried on the next tick. Order
// state is never touched by a failed notification.
package jobs
