// Package dejson parses JSON documents directly into packed binary records
// inside a caller-supplied buffer, driven by metadata produced by the
// schema compiler in cmd/dejsonc.
//
// A typical caller generates record views and metadata with dejsonc, then
// calls Size followed by Deserialize:
//
//	n, err := dejson.Size(myschema.Records{}, myschema.HashUser, doc)
//	buf := make([]byte, n)
//	err = dejson.Deserialize(myschema.Records{}, myschema.HashUser, doc, buf)
package dejson
