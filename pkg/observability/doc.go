/*
Package observability provides lifecycle hooks for monitoring engine runs.

Metrics records Prometheus counters and histograms per machine; LoggingHooks writes
each event to a structured logger. Both return domain.LifecycleHooks, which can be
combined with Merge and passed to automata.WithLifecycleHooks.
*/
package observability
