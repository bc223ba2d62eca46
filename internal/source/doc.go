// Package source defines the asynchronous collaborators the view-model talks
// to: a Fetcher that loads the full account set and an Updater that applies a
// bulk update to a batch of ids.
//
// Implementations live in sub-packages (memory, sqlstore) and in the
// transports (internal/transport/httpapi, internal/transport/rpc). The
// view-model never depends on a concrete implementation.
package source
