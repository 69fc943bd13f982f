// Package services defines shared utilities consumed by the pipeline stages
// and the remote clients under it.
//
// Key responsibilities:
//   - Context helpers that stamp run ids, video ids, channel names, and stage
//     names for logging.
//   - Structured error markers plus the Wrap helper. FailureDisposition turns
//     a failure into drop, retry, or abort so row-level problems never stop a
//     whole corpus run.
//
// The youtube and timedtext subpackages hold the remote clients.
package services
