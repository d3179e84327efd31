// Package web serves the order form over HTTP with gin.
//
// The router exposes a same-origin proxy to the inventory backend under
// /api/backend, an option search API under /api/options/:level that
// degrades to an empty list with a warning when the backend fails, a total
// calculator under /api/total, and a server-rendered form page at / whose
// query parameters drive the same cascade reducers the terminal front-ends
// use. Every response carries a Content-Security-Policy header that allows
// the page to connect to the backend.
package web
