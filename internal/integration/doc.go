// Package integration holds end-to-end tests against real Postgres and
// RabbitMQ containers. Run them with `go test -tags integration ./...`.
package integration
