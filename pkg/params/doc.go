// Package params holds the parameter bag handed to functions and validators.
//
// A bag is whatever the request carried: a JSON value, a raw body string or the
// query string. JSON objects are decoded into *Object, an insertion-ordered map,
// so reports that list keys (unpermitted parameters, for instance) follow the
// order the client used. All numbers are float64.
//
// Extract the bag from a request:
//
//	bag, err := params.FromRequest(r, params.WithMaxBodySize(1<<20))
//
// Build one in code:
//
//	obj := params.ObjectOf("name", "alice", "age", 30)
//	obj.Keys() // [name age]
package params
