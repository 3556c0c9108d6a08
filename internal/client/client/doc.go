// Package client contains client-side building blocks for batiknft.
//
// # Overview
//
// The package provides:
//  1. Local persistence bootstrap (InitDatabase) for the CLI, wiring an SQLite
//     database, applying embedded goose migrations and returning the
//     repositories built on top of it.
//  2. A gRPC client for the sequence issuer (see SequenceClient) that injects
//     the operator access token via an interceptor and maps gRPC status codes
//     to sentinel errors. It implements serial.Sequencer.
//
// # Error Handling
//
// Transport conditions are exposed as the common sentinels
// common.ErrUnavailable, common.ErrUnauthorized and
// common.ErrSequenceOutOfRange; match them with errors.Is.
package client
