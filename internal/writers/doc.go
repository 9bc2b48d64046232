// Package writers turns match records into serialized streams.
//
// Design:
//   • Writers own all presentation knowledge; the pool and collector never
//     format anything.
//   • JSONL goes through pkg/api (v1) for a stable wire format.
package writers
