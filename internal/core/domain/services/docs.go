// Package services provides domain services that span more than one aggregate
// or need a lookup the aggregates cannot do themselves.
//
// The package includes:
//   - ScanResolver: resolves a scanned or typed token to a cylinder, trying the
//     sequential number reading before the label token reading
package services
