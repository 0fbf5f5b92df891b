// Package clientip resolves the originating client address of an HTTP
// request.
//
// By default Resolve uses the socket address (RemoteAddr). Proxy headers
// are client-controlled, and the resolved address is the rate-limit key, so
// they are read only when trusted explicitly, in priority order:
//
//	r := clientip.New(clientip.WithHeaders("CF-Connecting-IP", "X-Forwarded-For"))
//
// Trust a header only when a proxy you control overwrites it. For
// X-Forwarded-For the first valid entry wins. Headers without a valid
// address fall through to RemoteAddr. ProxyHeaders lists the usual set and
// Config reads the list from TRUSTED_PROXY_HEADERS.
//
// Middleware stores the address in the request context. Handlers and the
// logger read it back with FromContext and LoggerExtractor.
package clientip
